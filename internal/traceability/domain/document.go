package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion tags every canonical document this service writes.
const SchemaVersion = "open-origin-json/0.4"

// Document type discriminators.
const (
	TypeActor    = "actor"
	TypeItem     = "item"
	TypeBatch    = "batch"
	TypeProcess  = "process"
	TypeEvent    = "event"
	TypeLocation = "location"
)

// RawDocument preserves documents whose type this service does not model,
// so they round-trip without interpretation.
type RawDocument struct {
	Fields map[string]any
}

func (r RawDocument) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

func (r *RawDocument) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Fields)
}

// DecodeDocument parses a canonical document into the entity named by its
// type discriminator. Unknown types come back as *RawDocument.
func DecodeDocument(data []byte) (any, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	var entity any
	switch head.Type {
	case TypeActor:
		entity = &Actor{}
	case TypeItem:
		entity = &Item{}
	case TypeBatch:
		entity = &Batch{}
	case TypeProcess:
		entity = &Process{}
	case TypeEvent:
		entity = &Event{}
	case TypeLocation:
		entity = &Location{}
	default:
		entity = &RawDocument{}
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", head.Type, err)
	}
	return entity, nil
}

// NowUTC returns the current time in the canonical timestamp form.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// DateOf trims a canonical timestamp to its date part.
func DateOf(timestamp string) string {
	if i := strings.Index(timestamp, "T"); i >= 0 {
		return timestamp[:i]
	}
	return timestamp
}
