package domain

import (
	"context"
	"encoding/json"
)

// ProcessLine is one item a recipe consumes or produces.
type ProcessLine struct {
	ItemID string    `json:"item_id,omitempty"`
	Amount *Quantity `json:"amount,omitempty"`
	Notes  string    `json:"notes,omitempty"`
}

// Process is a defined recipe or procedure that production events may
// reference.
type Process struct {
	ID          string        `json:"id"`
	ActorID     string        `json:"actor_id"`
	Name        string        `json:"name"`
	Kind        string        `json:"kind,omitempty"`
	Version     string        `json:"version,omitempty"`
	Steps       []string      `json:"steps,omitempty"`
	Inputs      []ProcessLine `json:"inputs,omitempty"`
	Outputs     []ProcessLine `json:"outputs,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

// MarshalJSON emits the canonical document form.
func (p Process) MarshalJSON() ([]byte, error) {
	type alias Process
	return json.Marshal(struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeProcess, alias: alias(p)})
}

// ProcessRepository defines the contract for process data access.
type ProcessRepository interface {
	Create(ctx context.Context, process *Process) error
	FindByID(ctx context.Context, actorID, id string) (*Process, error)
	FindAll(ctx context.Context, actorID string, limit, offset int) ([]Process, error)
	Update(ctx context.Context, process *Process) error
	Delete(ctx context.Context, actorID, id string) error
	DeleteByActor(ctx context.Context, actorID string) error
}
