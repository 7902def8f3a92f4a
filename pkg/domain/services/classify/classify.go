// Package classify assigns the quantity-relationship label for a matched
// demand record. It is pure: the cascade matcher decides which supply
// aggregate to compare, classify only compares.
package classify

import (
	"github.com/shopspring/decimal"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// Classify compares an aggregated available quantity against a requested
// quantity and returns the outcome for the given strategy. Rules, in priority
// order:
//
//  1. zero available (covers blank-only supply) -> No Shipment
//  2. available == requested                    -> Ok
//  3. available < requested                     -> Over Shipment
//  4. available > requested                     -> Less Shipment
//
// The Over/Less naming mirrors the legacy tool and is deliberately kept:
// "Over Shipment" means more was requested than supply covers.
func Classify(strategy entities.Strategy, available, requested decimal.Decimal) entities.Outcome {
	outcome := entities.Outcome{
		Strategy:  strategy,
		Available: available,
		Requested: requested,
	}
	switch {
	case available.IsZero():
		outcome.Label = entities.LabelNoShipment
	case available.Equal(requested):
		outcome.Label = entities.LabelOk
	case available.LessThan(requested):
		outcome.Label = entities.LabelOverShipment
	default:
		outcome.Label = entities.LabelLessShipment
	}
	return outcome
}
