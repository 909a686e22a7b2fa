//go:build wireinject
// +build wireinject

package traceability

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	delivery "github.com/openorigin/traceability/internal/traceability/delivery/http"
	"github.com/openorigin/traceability/kafka"
)

// InitializeHandler initializes the traceability handler with all dependencies
func InitializeHandler(db *gorm.DB, publisher *kafka.Publisher, cache *redis.Client) (*delivery.TraceabilityHandler, error) {
	wire.Build(
		AllHandlersSet,
		delivery.NewTraceabilityHandlerWithDI,
	)
	return nil, nil
}
