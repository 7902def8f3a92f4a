package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplyRecord is one row of the supply-side (source) batch. Identity fields
// are stored in normalized form; AvailableQty is invalid when the source cell
// was blank or unparseable. Records are immutable once loaded.
type SupplyRecord struct {
	RowIndex     int
	JobNo        string
	PONumber     string
	StyleRefNo   string
	Color        string
	Buyer        string
	AvailableQty decimal.NullDecimal
}

// JobLast4 returns the last four characters of the record's job number.
func (r *SupplyRecord) JobLast4() string {
	return JobLast4(r.JobNo)
}

// DemandRecord is one row of the demand-side (target) batch. It carries the
// original row cells for pass-through output and a write-once Outcome that the
// cascade matcher resolves exactly once.
type DemandRecord struct {
	RowIndex     int
	Row          []string
	JobNo        string
	PONumber     string
	StyleRefNo   string
	Color        string
	Buyer        string
	RequestedQty decimal.Decimal

	outcome Outcome
}

// JobLast4 returns the last four characters of the record's job number.
func (r *DemandRecord) JobLast4() string {
	return JobLast4(r.JobNo)
}

// Outcome returns the record's current outcome. Its label is LabelNotChecked
// until the record has been resolved.
func (r *DemandRecord) Outcome() Outcome {
	return r.outcome
}

// Resolved reports whether the record carries a terminal outcome.
func (r *DemandRecord) Resolved() bool {
	return r.outcome.Label != LabelNotChecked
}

// Resolve assigns the record's terminal outcome. A terminal outcome is
// write-once: resolving an already-resolved record is an error.
func (r *DemandRecord) Resolve(outcome Outcome) error {
	if r.outcome.Label != LabelNotChecked {
		return fmt.Errorf(
			"demand row %d already resolved as %q, refusing overwrite with %q",
			r.RowIndex, r.outcome.Status(), outcome.Status(),
		)
	}
	if outcome.Label == LabelNotChecked {
		return fmt.Errorf("demand row %d: cannot resolve to Not Checked", r.RowIndex)
	}
	r.outcome = outcome
	return nil
}

// JobLast4 returns the last four characters of a job number, or the whole
// string when it is shorter than four characters.
func JobLast4(jobNo string) string {
	runes := []rune(jobNo)
	if len(runes) <= 4 {
		return jobNo
	}
	return string(runes[len(runes)-4:])
}
