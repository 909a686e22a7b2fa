package kafka

import (
	"encoding/json"
	"time"
)

// EventRecordedMessage announces that a traceability event was appended to
// the log. External consumers (search indexers, notification services)
// follow these instead of polling the API.
type EventRecordedMessage struct {
	MessageID      string    `json:"message_id"`
	MessageType    string    `json:"message_type"`
	ActorID        string    `json:"actor_id"`
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	Timestamp      string    `json:"timestamp"`
	InputBatchIDs  []string  `json:"input_batch_ids,omitempty"`
	OutputBatchIDs []string  `json:"output_batch_ids,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
}

// BatchStatusChangedMessage announces a batch lifecycle transition, such
// as a batch running out or being recalled.
type BatchStatusChangedMessage struct {
	MessageID   string    `json:"message_id"`
	MessageType string    `json:"message_type"`
	ActorID     string    `json:"actor_id"`
	BatchID     string    `json:"batch_id"`
	ItemID      string    `json:"item_id,omitempty"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"published_at"`
}

// EventSubmittedMessage carries an event document recorded by an external
// system (field gateway, POS integration) for this service to append to
// the log. Document holds the canonical event document as-is.
type EventSubmittedMessage struct {
	MessageID string          `json:"message_id"`
	ActorID   string          `json:"actor_id"`
	Document  json.RawMessage `json:"document"`
}

// Message types
const (
	MessageTypeEventRecorded      = "trace.event.recorded"
	MessageTypeBatchStatusChanged = "trace.batch.status-changed"
	MessageTypeEventSubmitted     = "trace.event.submitted"
)

// Kafka topics
const (
	TopicTraceEvents      = "trace-events"
	TopicBatchStatus      = "trace-batch-status"
	TopicEventSubmissions = "trace-event-submissions"
)
