package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Quantity is an amount of material in a unit of measure. Amounts are
// decimals so conservation checks do not accumulate float error.
type Quantity struct {
	Amount decimal.Decimal
	Unit   string
}

// NewQuantity builds a quantity from a float amount.
func NewQuantity(amount float64, unit string) Quantity {
	return Quantity{Amount: decimal.NewFromFloat(amount), Unit: unit}
}

// Validate checks that the quantity is usable for conservation math.
func (q Quantity) Validate() error {
	if q.Unit == "" {
		return Validationf("quantity must have both amount and unit")
	}
	if q.Amount.IsNegative() {
		return Validationf("quantity amount cannot be negative")
	}
	return nil
}

// IsZero reports whether neither amount nor unit is set.
func (q Quantity) IsZero() bool {
	return q.Unit == "" && q.Amount.IsZero()
}

// Depleted reports whether the amount has reached zero or gone below it.
func (q Quantity) Depleted() bool {
	return !q.Amount.IsPositive()
}

func (q Quantity) String() string {
	return q.Amount.String() + " " + q.Unit
}

// MarshalJSON writes the amount as a bare JSON number, keeping documents
// compatible with readers that expect numeric amounts.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount json.RawMessage `json:"amount"`
		Unit   string          `json:"unit"`
	}{
		Amount: json.RawMessage(q.Amount.String()),
		Unit:   q.Unit,
	})
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var doc struct {
		Amount decimal.Decimal `json:"amount"`
		Unit   string          `json:"unit"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	q.Amount = doc.Amount
	q.Unit = doc.Unit
	return nil
}
