package services

import (
	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// SupplyKeyFunc computes a strategy's composite key for a supply record. The
// bool result is false when a key component is blank, in which case the row
// does not participate in the strategy's index.
type SupplyKeyFunc func(*entities.SupplyRecord) (string, bool)

// DemandKeyFunc computes a strategy's composite key for a demand record. The
// bool result is false when a key component is blank, which counts as a miss
// for that strategy.
type DemandKeyFunc func(*entities.DemandRecord) (string, bool)

// strategyKeys returns the supply- and demand-side key functions for a
// strategy. The Combined strategy is the only configuration-dependent one:
// the side named by cfg.CombinePOIn carries the styleRefNo-poNumber key while
// the other side is looked up by plain PO number.
func strategyKeys(strategy entities.Strategy, cfg entities.ReconcileConfig) (SupplyKeyFunc, DemandKeyFunc) {
	switch strategy {
	case entities.StrategyPO:
		return func(r *entities.SupplyRecord) (string, bool) {
				return poKey(r.PONumber)
			}, func(r *entities.DemandRecord) (string, bool) {
				return poKey(r.PONumber)
			}
	case entities.StrategyJobPO:
		return func(r *entities.SupplyRecord) (string, bool) {
				return jobPOKey(r.JobLast4(), r.PONumber)
			}, func(r *entities.DemandRecord) (string, bool) {
				return jobPOKey(r.JobLast4(), r.PONumber)
			}
	case entities.StrategyPOJob:
		return func(r *entities.SupplyRecord) (string, bool) {
				return poJobKey(r.PONumber, r.JobLast4())
			}, func(r *entities.DemandRecord) (string, bool) {
				return poJobKey(r.PONumber, r.JobLast4())
			}
	case entities.StrategyCombined:
		if cfg.CombinePOIn == entities.CombineInSource {
			return func(r *entities.SupplyRecord) (string, bool) {
					return combinedKey(r.StyleRefNo, r.PONumber)
				}, func(r *entities.DemandRecord) (string, bool) {
					return poKey(r.PONumber)
				}
		}
		return func(r *entities.SupplyRecord) (string, bool) {
				return poKey(r.PONumber)
			}, func(r *entities.DemandRecord) (string, bool) {
				return combinedKey(r.StyleRefNo, r.PONumber)
			}
	case entities.StrategyStyleColor:
		return func(r *entities.SupplyRecord) (string, bool) {
				return styleColorKey(r.StyleRefNo, r.Color)
			}, func(r *entities.DemandRecord) (string, bool) {
				return styleColorKey(r.StyleRefNo, r.Color)
			}
	default:
		return func(*entities.SupplyRecord) (string, bool) { return "", false },
			func(*entities.DemandRecord) (string, bool) { return "", false }
	}
}

func poKey(po string) (string, bool) {
	return po, po != ""
}

func jobPOKey(last4, po string) (string, bool) {
	if last4 == "" || po == "" {
		return "", false
	}
	return last4 + "_" + po, true
}

func poJobKey(po, last4 string) (string, bool) {
	if po == "" || last4 == "" {
		return "", false
	}
	return po + "_" + last4, true
}

func combinedKey(styleRef, po string) (string, bool) {
	if styleRef == "" || po == "" {
		return "", false
	}
	return styleRef + "-" + po, true
}

func styleColorKey(styleRef, color string) (string, bool) {
	if styleRef == "" || color == "" {
		return "", false
	}
	return styleRef + "|" + color, true
}
