package repositories

import "github.com/exfactory/shipmatch/pkg/domain/entities"

// SupplyRepository provides access to the loaded supply batch.
type SupplyRepository interface {
	GetSupplies() ([]*entities.SupplyRecord, error)
	LoadSupplies(records []*entities.SupplyRecord) error
}
