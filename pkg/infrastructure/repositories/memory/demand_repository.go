package memory

import (
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand batch storage.
type DemandRepository struct {
	records  []*entities.DemandRecord
	hasBuyer bool
}

// NewDemandRepository creates a new in-memory demand repository.
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads a normalized demand batch into the repository.
func (r *DemandRepository) LoadDemands(batch *entities.DemandBatch) error {
	r.records = append(r.records, batch.Records...)
	r.hasBuyer = batch.HasBuyer
	return nil
}

// GetDemands returns all demand records in load order.
func (r *DemandRepository) GetDemands() ([]*entities.DemandRecord, error) {
	return r.records, nil
}

// HasBuyerColumn reports whether the loaded batch carried a buyer column.
func (r *DemandRepository) HasBuyerColumn() bool {
	return r.hasBuyer
}
