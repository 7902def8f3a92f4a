package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Label is the closed set of terminal classifications a demand record can
// receive, plus the initial LabelNotChecked state.
type Label int

const (
	LabelNotChecked Label = iota
	LabelOk
	LabelNoShipment
	LabelOverShipment
	LabelLessShipment
	LabelNoMatchFound
	LabelNoMatchBuyer
)

// TerminalLabels lists every label a resolved record can carry, in display
// order.
var TerminalLabels = []Label{
	LabelOk,
	LabelNoShipment,
	LabelOverShipment,
	LabelLessShipment,
	LabelNoMatchFound,
	LabelNoMatchBuyer,
}

func (l Label) String() string {
	switch l {
	case LabelNotChecked:
		return "Not Checked"
	case LabelOk:
		return "Ok"
	case LabelNoShipment:
		return "No Shipment"
	case LabelOverShipment:
		return "Over Shipment"
	case LabelLessShipment:
		return "Less Shipment"
	case LabelNoMatchFound:
		return "No Match Found"
	case LabelNoMatchBuyer:
		return "No Match (Buyer)"
	default:
		return "Unknown"
	}
}

// Strategy identifies one matching rule of the cascade.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyPO
	StrategyJobPO
	StrategyPOJob
	StrategyCombined
	StrategyStyleColor
)

// Strategies lists every real matching strategy, in display order.
var Strategies = []Strategy{
	StrategyPO,
	StrategyJobPO,
	StrategyPOJob,
	StrategyCombined,
	StrategyStyleColor,
}

// Name returns the strategy's machine-readable identifier.
func (s Strategy) Name() string {
	switch s {
	case StrategyPO:
		return "po_only"
	case StrategyJobPO:
		return "job_po"
	case StrategyPOJob:
		return "po_job"
	case StrategyCombined:
		return "combined"
	case StrategyStyleColor:
		return "style_color"
	default:
		return "none"
	}
}

// DisplayName returns the strategy name used in rendered status strings.
func (s Strategy) DisplayName() string {
	switch s {
	case StrategyPO:
		return "PO Match"
	case StrategyJobPO:
		return "Job+PO Match"
	case StrategyPOJob:
		return "PO+Job Match"
	case StrategyCombined:
		return "Combined Match"
	case StrategyStyleColor:
		return "Style+Color Match"
	default:
		return "None"
	}
}

func (s Strategy) String() string {
	return s.Name()
}

// Outcome is the terminal result attached to a demand record: the
// classification label, the strategy that produced it, and, for mismatch
// labels, the two compared quantities.
type Outcome struct {
	Label     Label
	Strategy  Strategy
	Available decimal.Decimal
	Requested decimal.Decimal
}

// Classified reports whether the outcome came from a successful strategy
// lookup, as opposed to the no-match sweeps.
func (o Outcome) Classified() bool {
	return o.Strategy != StrategyNone
}

// Status renders the outcome as the human-readable string written into the
// annotated demand batch, e.g. "Over Shipment (PO Match: 120 vs 150)".
func (o Outcome) Status() string {
	switch o.Label {
	case LabelNotChecked:
		return "Not Checked"
	case LabelNoMatchFound:
		return "No Match Found"
	case LabelNoMatchBuyer:
		return "No Match Found (Buyer Specific)"
	case LabelOverShipment, LabelLessShipment:
		return fmt.Sprintf("%s (%s: %s vs %s)",
			o.Label, o.Strategy.DisplayName(), o.Available, o.Requested)
	default:
		return fmt.Sprintf("%s (%s)", o.Label, o.Strategy.DisplayName())
	}
}
