package domain

import (
	"strings"
	"testing"
)

func qty(amount float64, unit string) *Quantity {
	q := NewQuantity(amount, unit)
	return &q
}

func TestValidateSplitQuantities(t *testing.T) {
	source := &Batch{
		ID:       "batch-1",
		ActorID:  "actor-1",
		ItemID:   "apples",
		Quantity: qty(10, "kg"),
		Status:   BatchStatusActive,
	}

	tests := []struct {
		name    string
		outputs []BatchRef
		wantErr string
	}{
		{
			name: "exact split",
			outputs: []BatchRef{
				{BatchID: "child-1", Amount: qty(6, "kg")},
				{BatchID: "child-2", Amount: qty(4, "kg")},
			},
		},
		{
			name: "within one percent tolerance",
			outputs: []BatchRef{
				{BatchID: "child-1", Amount: qty(6, "kg")},
				{BatchID: "child-2", Amount: qty(4.05, "kg")},
			},
		},
		{
			name: "over tolerance",
			outputs: []BatchRef{
				{BatchID: "child-1", Amount: qty(6, "kg")},
				{BatchID: "child-2", Amount: qty(4.2, "kg")},
			},
			wantErr: "exceed source batch quantity",
		},
		{
			name: "unit mismatch",
			outputs: []BatchRef{
				{BatchID: "child-1", Amount: qty(6, "lbs")},
			},
			wantErr: `output unit "lbs" doesn't match source unit "kg"`,
		},
		{
			name: "outputs without amounts inherit the unit",
			outputs: []BatchRef{
				{BatchID: "child-1"},
				{BatchID: "child-2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplitQuantities(source, tt.outputs)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate split: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSplitWithoutSourceQuantity(t *testing.T) {
	source := &Batch{ID: "batch-1", ActorID: "actor-1", ItemID: "apples"}
	outputs := []BatchRef{{BatchID: "child-1", Amount: qty(1000, "kg")}}
	if err := ValidateSplitQuantities(source, outputs); err != nil {
		t.Fatalf("untracked source should not constrain outputs: %v", err)
	}
}

func TestValidateMergeQuantities(t *testing.T) {
	sources := []*Batch{
		{ID: "a", Quantity: qty(12, "kg")},
		{ID: "b", Quantity: qty(8, "kg")},
	}

	tests := []struct {
		name    string
		output  Quantity
		wantErr string
	}{
		{
			name:   "exact merge",
			output: NewQuantity(20, "kg"),
		},
		{
			name:   "process loss is fine",
			output: NewQuantity(19, "kg"),
		},
		{
			name:   "at five percent tolerance",
			output: NewQuantity(21, "kg"),
		},
		{
			name:    "over tolerance",
			output:  NewQuantity(21.5, "kg"),
			wantErr: "exceeds total inputs",
		},
		{
			name:    "unit mismatch",
			output:  NewQuantity(20, "lbs"),
			wantErr: `output unit "lbs" doesn't match input unit "kg"`,
		},
		{
			name:   "output without unit inherits",
			output: Quantity{Amount: NewQuantity(20, "kg").Amount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMergeQuantities(sources, tt.output)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate merge: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateMergeMixedUnits(t *testing.T) {
	sources := []*Batch{
		{ID: "a", Quantity: qty(12, "kg")},
		{ID: "b", Quantity: qty(8, "L")},
	}
	err := ValidateMergeQuantities(sources, NewQuantity(20, "kg"))
	if err == nil || !strings.Contains(err.Error(), "cannot merge batches with different units") {
		t.Fatalf("expected mixed unit error, got %v", err)
	}
}

func TestValidateProductionInput(t *testing.T) {
	tests := []struct {
		name    string
		batch   *Batch
		ref     BatchRef
		wantErr string
	}{
		{
			name:  "active batch within quantity",
			batch: &Batch{ID: "b1", Status: BatchStatusActive, Quantity: qty(10, "kg")},
			ref:   BatchRef{BatchID: "b1", Amount: qty(4, "kg")},
		},
		{
			name:  "quarantined batch stays usable",
			batch: &Batch{ID: "b1", Status: BatchStatusQuarantined, Quantity: qty(10, "kg")},
			ref:   BatchRef{BatchID: "b1", Amount: qty(4, "kg")},
		},
		{
			name:    "disposed batch rejected",
			batch:   &Batch{ID: "b1", Status: BatchStatusDisposed, Quantity: qty(10, "kg")},
			ref:     BatchRef{BatchID: "b1", Amount: qty(4, "kg")},
			wantErr: "is not available (status: disposed)",
		},
		{
			name:    "depleted batch rejected",
			batch:   &Batch{ID: "b1", Status: BatchStatusDepleted, Quantity: qty(0, "kg")},
			ref:     BatchRef{BatchID: "b1", Amount: qty(1, "kg")},
			wantErr: "is not available (status: depleted)",
		},
		{
			name:    "amount exceeds available",
			batch:   &Batch{ID: "b1", Status: BatchStatusActive, Quantity: qty(10, "kg")},
			ref:     BatchRef{BatchID: "b1", Amount: qty(10.5, "kg")},
			wantErr: "exceeds available quantity",
		},
		{
			name:    "unit mismatch",
			batch:   &Batch{ID: "b1", Status: BatchStatusActive, Quantity: qty(10, "kg")},
			ref:     BatchRef{BatchID: "b1", Amount: qty(4, "L")},
			wantErr: `requested unit "L" doesn't match batch unit "kg"`,
		},
		{
			name:  "no amount asks for no check",
			batch: &Batch{ID: "b1", Status: BatchStatusActive, Quantity: qty(10, "kg")},
			ref:   BatchRef{BatchID: "b1"},
		},
		{
			name:  "untracked batch passes",
			batch: &Batch{ID: "b1", Status: BatchStatusActive},
			ref:   BatchRef{BatchID: "b1", Amount: qty(4, "kg")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProductionInput(tt.batch, tt.ref)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate input: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateDateOrder(t *testing.T) {
	if err := ValidateDateOrder("2026-03-01", "2026-09-01"); err != nil {
		t.Fatalf("valid order: %v", err)
	}
	if err := ValidateDateOrder("", "2026-09-01"); err != nil {
		t.Fatalf("missing production date should pass: %v", err)
	}
	if err := ValidateDateOrder("2026-03-01", ""); err != nil {
		t.Fatalf("missing expiration date should pass: %v", err)
	}
	err := ValidateDateOrder("2026-09-01", "2026-03-01")
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := ValidateDateOrder("2026-03-01", "2026-03-01"); err == nil {
		t.Fatal("expiration equal to production should fail")
	}
}
