package repositories

import "github.com/exfactory/shipmatch/pkg/domain/entities"

// DemandRepository provides access to the loaded demand batch.
type DemandRepository interface {
	GetDemands() ([]*entities.DemandRecord, error)
	// HasBuyerColumn reports whether the loaded batch carried a buyer
	// column. Buyer-specific matching degrades to standard matching when it
	// did not.
	HasBuyerColumn() bool
	LoadDemands(batch *entities.DemandBatch) error
}
