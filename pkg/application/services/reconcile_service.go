package services

import (
	"context"
	"fmt"
	"time"

	"github.com/exfactory/shipmatch/pkg/application/dto"
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/domain/repositories"
	"github.com/exfactory/shipmatch/pkg/domain/services/classify"
)

// progressInterval is the number of records between periodic progress
// reports within a pass.
const progressInterval = 500

// standardCascade is the strategy order for records outside buyer-specific
// matching.
var standardCascade = []entities.Strategy{
	entities.StrategyPO,
	entities.StrategyJobPO,
	entities.StrategyStyleColor,
}

// buyerCascade is the strategy order for demand records of flagged buyers.
var buyerCascade = []entities.Strategy{
	entities.StrategyPOJob,
	entities.StrategyCombined,
}

// ReconcileService walks every demand record through its strategy cascade,
// resolving each record exactly once against precomputed supply quantity
// indexes.
type ReconcileService struct {
	progress ProgressSink
}

// NewReconcileService creates a reconcile service that discards progress.
func NewReconcileService() *ReconcileService {
	return NewReconcileServiceWithProgress(nil)
}

// NewReconcileServiceWithProgress creates a reconcile service reporting to
// the given sink. A nil sink is replaced with a no-op sink.
func NewReconcileServiceWithProgress(sink ProgressSink) *ReconcileService {
	if sink == nil {
		sink = NopProgressSink{}
	}
	return &ReconcileService{progress: sink}
}

// Reconcile matches the demand batch against the supply batch and returns the
// annotated records plus a match summary. The run is all-or-nothing: any
// failure yields no partial result. Demand records are mutated in place
// (their write-once Outcome is set); everything else is read-only.
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	supplyRepo repositories.SupplyRepository,
	demandRepo repositories.DemandRepository,
	cfg entities.ReconcileConfig,
) (*dto.ReconcileResult, error) {
	start := time.Now()

	supplies, err := supplyRepo.GetSupplies()
	if err != nil {
		return nil, fmt.Errorf("failed to read supply batch: %w", err)
	}
	demands, err := demandRepo.GetDemands()
	if err != nil {
		return nil, fmt.Errorf("failed to read demand batch: %w", err)
	}

	buyerMode := cfg.BuyerSpecific
	if buyerMode && !demandRepo.HasBuyerColumn() {
		// Non-fatal degradation: without a buyer column every record runs
		// the standard cascade.
		buyerMode = false
		s.progress.Note("buyer-specific matching requested but demand batch has no buyer column; falling back to standard matching")
	}

	flaggedSet := cfg.FlaggedSet()
	flagged := func(r *entities.DemandRecord) bool {
		if !buyerMode {
			return false
		}
		_, ok := flaggedSet[r.Buyer]
		return ok
	}
	standard := func(r *entities.DemandRecord) bool {
		return !flagged(r)
	}

	for _, strategy := range standardCascade {
		if err := s.runPass(ctx, strategy, cfg, supplies, demands, standard); err != nil {
			return nil, err
		}
	}

	if buyerMode {
		for _, strategy := range buyerCascade {
			if err := s.runPass(ctx, strategy, cfg, supplies, demands, flagged); err != nil {
				return nil, err
			}
		}
		// Flagged records exhausted both buyer strategies: terminal buyer
		// no-match, assigned before the final sweep so they can never
		// degrade to a plain No Match Found.
		for _, record := range demands {
			if record.Resolved() || !flagged(record) {
				continue
			}
			if err := record.Resolve(entities.Outcome{Label: entities.LabelNoMatchBuyer}); err != nil {
				return nil, fmt.Errorf("buyer no-match sweep: %w", err)
			}
		}
	}

	// Final sweep: visits every record exactly once regardless of mode and
	// closes out anything the cascades left unresolved.
	summary := entities.NewMatchSummary()
	for _, record := range demands {
		if !record.Resolved() {
			if err := record.Resolve(entities.Outcome{Label: entities.LabelNoMatchFound}); err != nil {
				return nil, fmt.Errorf("no-match sweep: %w", err)
			}
		}
		summary.Add(record.Outcome())
	}

	return &dto.ReconcileResult{
		Demands: demands,
		Summary: summary,
		Elapsed: time.Since(start),
	}, nil
}

// runPass runs one strategy over every record still unresolved and selected
// by include. Hits resolve the record via the quantity classifier; misses
// leave it untouched for the next strategy.
func (s *ReconcileService) runPass(
	ctx context.Context,
	strategy entities.Strategy,
	cfg entities.ReconcileConfig,
	supplies []*entities.SupplyRecord,
	demands []*entities.DemandRecord,
	include func(*entities.DemandRecord) bool,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("reconcile cancelled before %s pass: %w", strategy.Name(), err)
	}

	supplyKey, demandKey := strategyKeys(strategy, cfg)
	index := BuildQuantityIndex(supplies, supplyKey)

	pending := 0
	for _, record := range demands {
		if !record.Resolved() && include(record) {
			pending++
		}
	}
	s.progress.PassStarted(strategy.Name(), pending)

	processed := 0
	for _, record := range demands {
		if record.Resolved() || !include(record) {
			continue
		}
		processed++
		if processed%progressInterval == 0 {
			s.progress.Progress(strategy.Name(), processed, pending)
		}

		key, ok := demandKey(record)
		if !ok {
			continue
		}
		available, found := index[key]
		if !found {
			continue
		}
		outcome := classify.Classify(strategy, available, record.RequestedQty)
		if err := record.Resolve(outcome); err != nil {
			return fmt.Errorf("%s pass: %w", strategy.Name(), err)
		}
	}
	return nil
}
