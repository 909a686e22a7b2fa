package domain

import (
	"context"
	"encoding/json"
)

// Batch statuses. A batch starts active and may move between statuses
// freely; depleted, disposed, recalled, and expired batches no longer feed
// production.
const (
	BatchStatusActive      = "active"
	BatchStatusDepleted    = "depleted"
	BatchStatusQuarantined = "quarantined"
	BatchStatusRecalled    = "recalled"
	BatchStatusExpired     = "expired"
	BatchStatusDisposed    = "disposed"
)

var validBatchStatuses = map[string]bool{
	BatchStatusActive:      true,
	BatchStatusDepleted:    true,
	BatchStatusQuarantined: true,
	BatchStatusRecalled:    true,
	BatchStatusExpired:     true,
	BatchStatusDisposed:    true,
}

// ValidBatchStatus reports whether s is one of the known batch statuses.
func ValidBatchStatus(s string) bool {
	return validBatchStatuses[s]
}

// Origin kinds recorded on batches the engine creates.
const (
	OriginHarvested   = "harvested"
	OriginTransformed = "transformed"
	OriginSplit       = "split"
	OriginMerged      = "merged"
)

// Batch is the smallest traceable unit of an item: one lot, one pallet,
// one tank.
type Batch struct {
	ID             string            `json:"id"`
	ActorID        string            `json:"actor_id"`
	ItemID         string            `json:"item_id"`
	LocationID     string            `json:"location_id,omitempty"`
	Quantity       *Quantity         `json:"quantity,omitempty"`
	Status         string            `json:"status,omitempty"`
	OriginKind     string            `json:"origin_kind,omitempty"`
	ProductionDate string            `json:"production_date,omitempty"`
	ExpirationDate string            `json:"expiration_date,omitempty"`
	BestBeforeDate string            `json:"best_before_date,omitempty"`
	LotCode        string            `json:"lot_code,omitempty"`
	IsMockRecall   bool              `json:"is_mock_recall,omitempty"`
	ExternalIDs    map[string]string `json:"external_ids,omitempty"`
	Attachments    []Attachment      `json:"attachments,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	UpdatedAt      string            `json:"updated_at,omitempty"`
}

// Consumable reports whether the batch may feed production. Quarantined
// material stays usable; quality holds are advisory until disposal.
func (b *Batch) Consumable() bool {
	return b.Status == BatchStatusActive || b.Status == BatchStatusQuarantined
}

// ApplyQuantity replaces the batch quantity and flips the status to
// depleted once nothing remains.
func (b *Batch) ApplyQuantity(q Quantity) {
	b.Quantity = &q
	if q.Depleted() {
		b.Status = BatchStatusDepleted
	}
}

// MarshalJSON emits the canonical document form. Active is the default
// status and is left out of the document.
func (b Batch) MarshalJSON() ([]byte, error) {
	type alias Batch
	doc := struct {
		Schema string `json:"schema"`
		Type   string `json:"type"`
		alias
	}{Schema: SchemaVersion, Type: TypeBatch, alias: alias(b)}
	if doc.Status == BatchStatusActive {
		doc.Status = ""
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores the active default when the document omits the
// status.
func (b *Batch) UnmarshalJSON(data []byte) error {
	type alias Batch
	if err := json.Unmarshal(data, (*alias)(b)); err != nil {
		return err
	}
	if b.Status == "" {
		b.Status = BatchStatusActive
	}
	return nil
}

// BatchFilter narrows batch listings.
type BatchFilter struct {
	Status string
	ItemID string
	Limit  int
	Offset int
}

// BatchRepository defines the contract for batch data access.
type BatchRepository interface {
	Create(ctx context.Context, batch *Batch) error
	FindByID(ctx context.Context, actorID, id string) (*Batch, error)
	FindAll(ctx context.Context, actorID string, filter BatchFilter) ([]Batch, error)
	Update(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, actorID, id string) error
	DeleteByActor(ctx context.Context, actorID string) error
}
