package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// JSONDoc carries a canonical document into a jsonb column. lib/pq sends
// []byte as bytea, so the document travels as text and PostgreSQL casts
// it on the way in.
type JSONDoc []byte

func (d JSONDoc) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

func (d *JSONDoc) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// ActorRow is the actors table: lookup columns promoted out of the
// document, the canonical document stored alongside.
type ActorRow struct {
	PK        uint    `gorm:"primaryKey"`
	ID        string  `gorm:"not null;uniqueIndex:idx_actors_id"`
	Name      string  `gorm:"not null"`
	Kind      string  `gorm:"index"`
	Doc       JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (ActorRow) TableName() string {
	return "actors"
}

// ItemRow is the items table.
type ItemRow struct {
	PK        uint    `gorm:"primaryKey"`
	ID        string  `gorm:"not null;uniqueIndex:idx_items_actor_id,priority:2"`
	ActorID   string  `gorm:"not null;uniqueIndex:idx_items_actor_id,priority:1;index"`
	Name      string  `gorm:"not null"`
	Category  string  `gorm:"index"`
	Doc       JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (ItemRow) TableName() string {
	return "items"
}

// LocationRow is the locations table.
type LocationRow struct {
	PK        uint    `gorm:"primaryKey"`
	ID        string  `gorm:"not null;uniqueIndex:idx_locations_actor_id,priority:2"`
	ActorID   string  `gorm:"not null;uniqueIndex:idx_locations_actor_id,priority:1;index"`
	Name      string  `gorm:"not null"`
	Kind      string  `gorm:"index"`
	Doc       JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (LocationRow) TableName() string {
	return "locations"
}

// ProcessRow is the processes table.
type ProcessRow struct {
	PK        uint    `gorm:"primaryKey"`
	ID        string  `gorm:"not null;uniqueIndex:idx_processes_actor_id,priority:2"`
	ActorID   string  `gorm:"not null;uniqueIndex:idx_processes_actor_id,priority:1;index"`
	Name      string  `gorm:"not null"`
	Kind      string  `gorm:"index"`
	Version   string
	Doc       JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (ProcessRow) TableName() string {
	return "processes"
}

// BatchRow is the batches table. Status, item, and dates are promoted so
// listings and recall scans filter without opening documents.
type BatchRow struct {
	PK             uint   `gorm:"primaryKey"`
	ID             string `gorm:"not null;uniqueIndex:idx_batches_actor_id,priority:2"`
	ActorID        string `gorm:"not null;uniqueIndex:idx_batches_actor_id,priority:1;index"`
	ItemID         string `gorm:"not null;index:idx_batches_item"`
	Status         string `gorm:"index:idx_batches_status;default:active"`
	ProductionDate string
	ExpirationDate string
	IsMockRecall   bool    `gorm:"index"`
	Doc            JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name
func (BatchRow) TableName() string {
	return "batches"
}

// EventRow is the events table.
type EventRow struct {
	PK        uint   `gorm:"primaryKey"`
	ID        string `gorm:"not null;uniqueIndex:idx_events_actor_id,priority:2"`
	ActorID   string `gorm:"not null;uniqueIndex:idx_events_actor_id,priority:1;index"`
	EventType string `gorm:"not null;index:idx_events_type"`
	Timestamp string `gorm:"not null;index:idx_events_timestamp"`
	Doc       JSONDoc `gorm:"column:jsonb_doc;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (EventRow) TableName() string {
	return "events"
}

// EventEdgeRow indexes which batches an event touched, one row per
// reference, so graph traversals follow an index instead of scanning
// event documents. Rows are written in the same transaction as the event.
type EventEdgeRow struct {
	PK      uint   `gorm:"primaryKey"`
	ActorID string `gorm:"not null;index:idx_event_edges_batch,priority:1"`
	EventID string `gorm:"not null;index"`
	BatchID string `gorm:"not null;index:idx_event_edges_batch,priority:2"`
	Role    string `gorm:"not null;index:idx_event_edges_batch,priority:3"`
}

// TableName specifies the table name
func (EventEdgeRow) TableName() string {
	return "event_edges"
}

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ActorRow{},
		&ItemRow{},
		&LocationRow{},
		&ProcessRow{},
		&BatchRow{},
		&EventRow{},
		&EventEdgeRow{},
	)
}

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
