package domain

import (
	"encoding/json"
	"testing"
)

func TestDecodeDocumentByType(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want func(t *testing.T, entity any)
	}{
		{
			name: "actor",
			doc:  `{"schema":"open-origin-json/0.4","type":"actor","id":"farm-1","name":"Green Farm"}`,
			want: func(t *testing.T, entity any) {
				actor, ok := entity.(*Actor)
				if !ok {
					t.Fatalf("expected *Actor, got %T", entity)
				}
				if actor.ID != "farm-1" || actor.Name != "Green Farm" {
					t.Fatalf("unexpected actor: %+v", actor)
				}
			},
		},
		{
			name: "batch defaults to active",
			doc:  `{"schema":"open-origin-json/0.4","type":"batch","id":"lot-1","actor_id":"farm-1","item_id":"apples"}`,
			want: func(t *testing.T, entity any) {
				batch, ok := entity.(*Batch)
				if !ok {
					t.Fatalf("expected *Batch, got %T", entity)
				}
				if batch.Status != BatchStatusActive {
					t.Fatalf("expected active default, got %q", batch.Status)
				}
			},
		},
		{
			name: "event with refs",
			doc:  `{"type":"event","id":"ev-1","actor_id":"farm-1","event_type":"processing","inputs":[{"batch_id":"lot-1","amount":{"amount":4,"unit":"kg"}}]}`,
			want: func(t *testing.T, entity any) {
				event, ok := entity.(*Event)
				if !ok {
					t.Fatalf("expected *Event, got %T", entity)
				}
				if len(event.Inputs) != 1 || event.Inputs[0].BatchID != "lot-1" {
					t.Fatalf("unexpected inputs: %+v", event.Inputs)
				}
				if event.Inputs[0].Amount == nil || event.Inputs[0].Amount.Unit != "kg" {
					t.Fatalf("expected kg amount, got %+v", event.Inputs[0].Amount)
				}
			},
		},
		{
			name: "unknown type round-trips raw",
			doc:  `{"type":"shipment-manifest","id":"m-1","carrier":"ACME"}`,
			want: func(t *testing.T, entity any) {
				raw, ok := entity.(*RawDocument)
				if !ok {
					t.Fatalf("expected *RawDocument, got %T", entity)
				}
				if raw.Fields["carrier"] != "ACME" {
					t.Fatalf("expected carrier preserved, got %v", raw.Fields)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, err := DecodeDocument([]byte(tt.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			tt.want(t, entity)
		})
	}
}

func TestDecodeDocumentMalformed(t *testing.T) {
	if _, err := DecodeDocument([]byte(`{"type":`)); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestMarshalStampsSchemaAndType(t *testing.T) {
	tests := []struct {
		name     string
		entity   any
		wantType string
	}{
		{"actor", Actor{ID: "a", Name: "A"}, TypeActor},
		{"item", Item{ID: "i", ActorID: "a", Name: "I"}, TypeItem},
		{"batch", Batch{ID: "b", ActorID: "a", ItemID: "i", Status: BatchStatusActive}, TypeBatch},
		{"event", Event{ID: "e", ActorID: "a", EventType: EventTypeHarvest}, TypeEvent},
		{"location", Location{ID: "l", ActorID: "a", Name: "L"}, TypeLocation},
		{"process", Process{ID: "p", ActorID: "a", Name: "P"}, TypeProcess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.entity)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var head struct {
				Schema string `json:"schema"`
				Type   string `json:"type"`
			}
			if err := json.Unmarshal(data, &head); err != nil {
				t.Fatalf("unmarshal head: %v", err)
			}
			if head.Schema != SchemaVersion {
				t.Fatalf("expected schema %q, got %q", SchemaVersion, head.Schema)
			}
			if head.Type != tt.wantType {
				t.Fatalf("expected type %q, got %q", tt.wantType, head.Type)
			}
		})
	}
}

func TestBatchMarshalOmitsActiveStatus(t *testing.T) {
	data, err := json.Marshal(Batch{ID: "b", ActorID: "a", ItemID: "i", Status: BatchStatusActive})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := doc["status"]; ok {
		t.Fatalf("active status should be omitted from the document: %s", data)
	}

	data, err = json.Marshal(Batch{ID: "b", ActorID: "a", ItemID: "i", Status: BatchStatusRecalled})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["status"] != BatchStatusRecalled {
		t.Fatalf("expected recalled status in document, got %v", doc["status"])
	}
}

func TestDateOf(t *testing.T) {
	if got := DateOf("2026-08-25T14:30:00Z"); got != "2026-08-25" {
		t.Fatalf("expected 2026-08-25, got %q", got)
	}
	if got := DateOf("2026-08-25"); got != "2026-08-25" {
		t.Fatalf("bare date should pass through, got %q", got)
	}
}

func TestValidEventType(t *testing.T) {
	for _, typ := range []string{EventTypeHarvest, EventTypeProcessing, EventTypeShipping, EventTypeDisposal} {
		if !ValidEventType(typ) {
			t.Fatalf("expected %q to be valid", typ)
		}
	}
	if !ValidEventType("x-blockchain-anchor") {
		t.Fatal("x- extension types must pass")
	}
	if ValidEventType("teleportation") {
		t.Fatal("unknown type must fail")
	}
}
