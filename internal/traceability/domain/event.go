package domain

import (
	"context"
	"encoding/json"
	"strings"
)

// Event types. Harvest, processing, split, merge, and disposal carry
// engine semantics; the rest are recorded as-is and interpreted by reports.
const (
	EventTypeHarvest      = "harvest"
	EventTypeProcessing   = "processing"
	EventTypePackaging    = "packaging"
	EventTypeReceiving    = "receiving"
	EventTypeShipping     = "shipping"
	EventTypeStorageMove  = "storage_move"
	EventTypeQualityCheck = "quality_check"
	EventTypeSplit        = "split"
	EventTypeMerge        = "merge"
	EventTypeDisposal     = "disposal"
)

// CustomTypePrefix marks extension types that pass validation without
// built-in semantics.
const CustomTypePrefix = "x-"

var validEventTypes = map[string]bool{
	EventTypeHarvest:      true,
	EventTypeProcessing:   true,
	EventTypePackaging:    true,
	EventTypeReceiving:    true,
	EventTypeShipping:     true,
	EventTypeStorageMove:  true,
	EventTypeQualityCheck: true,
	EventTypeSplit:        true,
	EventTypeMerge:        true,
	EventTypeDisposal:     true,
}

// ValidEventType reports whether t is a known or "x-" extension type.
func ValidEventType(t string) bool {
	return validEventTypes[t] || strings.HasPrefix(t, CustomTypePrefix)
}

// BatchRef ties an event to a batch, optionally with the amount consumed
// or produced. ItemID appears on processing outputs that create batches;
// ActorID only on cross-actor references.
type BatchRef struct {
	BatchID string    `json:"batch_id"`
	Amount  *Quantity `json:"amount,omitempty"`
	ItemID  string    `json:"item_id,omitempty"`
	ActorID string    `json:"actor_id,omitempty"`
}

// Event is a timestamped action that transformed or moved goods. Inputs
// and outputs are immutable once recorded; they are the edges of the
// traceability graph.
type Event struct {
	ID                 string            `json:"id"`
	ActorID            string            `json:"actor_id"`
	Timestamp          string            `json:"timestamp"`
	EventType          string            `json:"event_type"`
	LocationID         string            `json:"location_id,omitempty"`
	ProcessID          string            `json:"process_id,omitempty"`
	Inputs             []BatchRef        `json:"inputs,omitempty"`
	Outputs            []BatchRef        `json:"outputs,omitempty"`
	PackagingMaterials []BatchRef        `json:"packaging_materials,omitempty"`
	Waste              []BatchRef        `json:"waste,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	PerformedBy        string            `json:"performed_by,omitempty"`
	ExternalIDs        map[string]string `json:"external_ids,omitempty"`
	Attachments        []Attachment      `json:"attachments,omitempty"`
	CreatedAt          string            `json:"created_at,omitempty"`
	UpdatedAt          string            `json:"updated_at,omitempty"`
}

// MarshalJSON emits the canonical document form.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	return json.Marshal(struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeEvent, alias: alias(e)})
}

// EventFilter narrows event listings.
type EventFilter struct {
	EventType string
	Limit     int
	Offset    int
}

// EdgeRole marks which side of an event a batch sits on.
const (
	EdgeRoleInput  = "input"
	EdgeRoleOutput = "output"
)

// EventRepository defines the contract for event data access.
// FindConsuming and FindProducing answer which events touched a batch;
// implementations back them with an edge index rather than scanning
// documents.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, actorID, id string) (*Event, error)
	FindAll(ctx context.Context, actorID string, filter EventFilter) ([]Event, error)
	FindConsuming(ctx context.Context, actorID, batchID string) ([]Event, error)
	FindProducing(ctx context.Context, actorID, batchID string) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	DeleteByActor(ctx context.Context, actorID string) error
}
