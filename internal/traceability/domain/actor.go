package domain

import (
	"context"
	"encoding/json"
)

// Actor is an organization or person responsible for production. Every
// other entity is scoped to the actor that owns it.
type Actor struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Kind           string            `json:"kind,omitempty"`
	Contacts       map[string]string `json:"contacts,omitempty"`
	Address        map[string]string `json:"address,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	ExternalIDs    map[string]string `json:"external_ids,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	UpdatedAt      string            `json:"updated_at,omitempty"`
}

// MarshalJSON emits the canonical document form.
func (a Actor) MarshalJSON() ([]byte, error) {
	type alias Actor
	return json.Marshal(struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeActor, alias: alias(a)})
}

// ActorRepository defines the contract for actor data access.
type ActorRepository interface {
	Create(ctx context.Context, actor *Actor) error
	FindByID(ctx context.Context, id string) (*Actor, error)
	FindAll(ctx context.Context, limit, offset int) ([]Actor, error)
	Update(ctx context.Context, actor *Actor) error
	Delete(ctx context.Context, id string) error
}
