package domain

import (
	"context"
	"encoding/json"
)

// Location is a physical or logical place where events happen: a field, a
// facility, a storage room.
type Location struct {
	ID          string             `json:"id"`
	ActorID     string             `json:"actor_id"`
	Name        string             `json:"name"`
	Kind        string             `json:"kind,omitempty"`
	Coordinates map[string]float64 `json:"coordinates,omitempty"`
	Address     map[string]string  `json:"address,omitempty"`
	ExternalIDs map[string]string  `json:"external_ids,omitempty"`
	CreatedAt   string             `json:"created_at,omitempty"`
	UpdatedAt   string             `json:"updated_at,omitempty"`
}

// MarshalJSON emits the canonical document form.
func (l Location) MarshalJSON() ([]byte, error) {
	type alias Location
	return json.Marshal(struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeLocation, alias: alias(l)})
}

// LocationRepository defines the contract for location data access.
type LocationRepository interface {
	Create(ctx context.Context, location *Location) error
	FindByID(ctx context.Context, actorID, id string) (*Location, error)
	FindAll(ctx context.Context, actorID string, limit, offset int) ([]Location, error)
	Update(ctx context.Context, location *Location) error
	Delete(ctx context.Context, actorID, id string) error
	DeleteByActor(ctx context.Context, actorID string) error
}
