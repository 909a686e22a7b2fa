package domain

import (
	"context"
	"encoding/json"
)

// Item is a kind of thing an actor handles: ingredient, product, or
// packaging. Batches are instances of an item.
type Item struct {
	ID          string            `json:"id"`
	ActorID     string            `json:"actor_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	Description string            `json:"description,omitempty"`
	ExternalIDs map[string]string `json:"external_ids,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

// MarshalJSON emits the canonical document form.
func (i Item) MarshalJSON() ([]byte, error) {
	type alias Item
	return json.Marshal(struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeItem, alias: alias(i)})
}

// ItemRepository defines the contract for item data access.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, actorID, id string) (*Item, error)
	FindAll(ctx context.Context, actorID string, limit, offset int) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, actorID, id string) error
	DeleteByActor(ctx context.Context, actorID string) error
}
