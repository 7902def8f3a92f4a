package memory

import (
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/domain/repositories"
)

// SupplyRepository provides in-memory supply batch storage.
type SupplyRepository struct {
	records []*entities.SupplyRecord
}

// NewSupplyRepository creates a new in-memory supply repository.
func NewSupplyRepository() *SupplyRepository {
	return &SupplyRepository{}
}

// Verify interface compliance
var _ repositories.SupplyRepository = (*SupplyRepository)(nil)

// LoadSupplies loads supply records into the repository.
func (r *SupplyRepository) LoadSupplies(records []*entities.SupplyRecord) error {
	r.records = append(r.records, records...)
	return nil
}

// GetSupplies returns all supply records in load order.
func (r *SupplyRepository) GetSupplies() ([]*entities.SupplyRecord, error) {
	return r.records, nil
}
