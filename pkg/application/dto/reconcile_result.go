package dto

import (
	"time"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// ReconcileResult contains the complete output of a reconcile run: the
// demand batch with every record's outcome populated, the match summary and
// the matching wall time.
type ReconcileResult struct {
	Demands []*entities.DemandRecord
	Summary *entities.MatchSummary
	Elapsed time.Duration
}
