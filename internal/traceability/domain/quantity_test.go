package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuantityValidate(t *testing.T) {
	tests := []struct {
		name    string
		qty     Quantity
		wantErr string
	}{
		{
			name: "valid",
			qty:  NewQuantity(10.5, "kg"),
		},
		{
			name:    "missing unit",
			qty:     Quantity{Amount: decimal.NewFromInt(5)},
			wantErr: "quantity must have both amount and unit",
		},
		{
			name:    "negative amount",
			qty:     NewQuantity(-1, "kg"),
			wantErr: "quantity amount cannot be negative",
		},
		{
			name: "zero amount is valid",
			qty:  NewQuantity(0, "kg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.qty.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestQuantityDepleted(t *testing.T) {
	if NewQuantity(1, "kg").Depleted() {
		t.Fatal("positive quantity should not be depleted")
	}
	if !NewQuantity(0, "kg").Depleted() {
		t.Fatal("zero quantity should be depleted")
	}
	if !NewQuantity(-0.5, "kg").Depleted() {
		t.Fatal("negative quantity should be depleted")
	}
}

func TestQuantityJSONAmountIsBareNumber(t *testing.T) {
	data, err := json.Marshal(NewQuantity(2.5, "kg"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"amount":2.5,"unit":"kg"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}

	var q Quantity
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !q.Amount.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("expected amount 2.5, got %s", q.Amount)
	}
	if q.Unit != "kg" {
		t.Fatalf("expected unit kg, got %q", q.Unit)
	}
}

func TestQuantityJSONPreservesPrecision(t *testing.T) {
	// 0.1+0.2 style drift must not creep in through the codec.
	var q Quantity
	if err := json.Unmarshal([]byte(`{"amount":0.3,"unit":"L"}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Amount.String() != "0.3" {
		t.Fatalf("expected 0.3, got %s", q.Amount)
	}
}
