package domain

import "github.com/shopspring/decimal"

// Conservation tolerances. Split outputs may exceed their source by 1% to
// absorb rounding; merge outputs tolerate up to 5% process loss. Recall
// reconciliation reuses the merge margin.
var (
	SplitTolerance          = decimal.NewFromFloat(0.01)
	MergeTolerance          = decimal.NewFromFloat(0.05)
	ReconciliationTolerance = decimal.NewFromFloat(0.05)
)

// ValidateSplitQuantities checks that the outputs drawn from source stay
// within its quantity plus the split tolerance. Outputs without a unit
// inherit the source unit. A source without quantity tracking passes.
func ValidateSplitQuantities(source *Batch, outputs []BatchRef) error {
	if source.Quantity == nil {
		return nil
	}
	sourceAmount := source.Quantity.Amount
	sourceUnit := source.Quantity.Unit

	total := decimal.Zero
	for _, out := range outputs {
		unit := ""
		amount := decimal.Zero
		if out.Amount != nil {
			unit = out.Amount.Unit
			amount = out.Amount.Amount
		}
		if unit == "" {
			unit = sourceUnit
		}
		if unit != sourceUnit {
			return Validationf("output unit %q doesn't match source unit %q", unit, sourceUnit)
		}
		total = total.Add(amount)
	}

	tolerance := sourceAmount.Mul(SplitTolerance)
	if total.GreaterThan(sourceAmount.Add(tolerance)) {
		return Validationf("split outputs (%s %s) exceed source batch quantity (%s %s)",
			total, sourceUnit, sourceAmount, sourceUnit)
	}
	return nil
}

// ValidateMergeQuantities checks that the merged output does not exceed
// the summed source quantities plus the merge tolerance. All sources must
// share one unit; an output without a unit inherits it.
func ValidateMergeQuantities(sources []*Batch, output Quantity) error {
	total := decimal.Zero
	commonUnit := ""
	for _, b := range sources {
		if b.Quantity == nil {
			continue
		}
		if commonUnit == "" {
			commonUnit = b.Quantity.Unit
		} else if b.Quantity.Unit != commonUnit {
			return Validationf("cannot merge batches with different units: %s vs %s",
				commonUnit, b.Quantity.Unit)
		}
		total = total.Add(b.Quantity.Amount)
	}

	outUnit := output.Unit
	if outUnit == "" {
		outUnit = commonUnit
	}
	if outUnit != commonUnit {
		return Validationf("output unit %q doesn't match input unit %q", outUnit, commonUnit)
	}

	tolerance := total.Mul(MergeTolerance)
	if output.Amount.GreaterThan(total.Add(tolerance)) {
		return Validationf("merge output (%s %s) exceeds total inputs (%s %s)",
			output.Amount, outUnit, total, commonUnit)
	}
	return nil
}

// ValidateProductionInput checks one input reference against the batch it
// names: the batch must be consumable, and a requested amount must match
// the batch unit and fit inside its available quantity. A reference
// without an amount asks for no quantity check.
func ValidateProductionInput(batch *Batch, ref BatchRef) error {
	if !batch.Consumable() {
		return Validationf("input batch %s is not available (status: %s)", batch.ID, batch.Status)
	}
	if ref.Amount == nil || batch.Quantity == nil {
		return nil
	}

	unit := ref.Amount.Unit
	if unit == "" {
		unit = batch.Quantity.Unit
	}
	if unit != batch.Quantity.Unit {
		return Validationf("requested unit %q doesn't match batch unit %q for batch %s",
			unit, batch.Quantity.Unit, batch.ID)
	}
	if ref.Amount.Amount.GreaterThan(batch.Quantity.Amount) {
		return Validationf("requested amount (%s %s) exceeds available quantity (%s) for batch %s",
			ref.Amount.Amount, unit, batch.Quantity, batch.ID)
	}
	return nil
}

// ValidateDateOrder rejects an expiration date that is not after the
// production date. ISO dates compare correctly as strings.
func ValidateDateOrder(productionDate, expirationDate string) error {
	if productionDate == "" || expirationDate == "" {
		return nil
	}
	if expirationDate <= productionDate {
		return Validationf("expiration date (%s) must be after production date (%s)",
			expirationDate, productionDate)
	}
	return nil
}
