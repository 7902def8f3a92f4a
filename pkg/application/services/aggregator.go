package services

import (
	"github.com/shopspring/decimal"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// BuildQuantityIndex builds a strategy's lookup map: composite key -> sum of
// available quantity over every supply record sharing that key. Rows with
// blank quantity contribute zero to the sum but still create the key, so a
// key whose rows are all blank is present with a zero total. A key absent
// from the map means "no supply found by this strategy", which must never be
// conflated with a present zero total.
func BuildQuantityIndex(supplies []*entities.SupplyRecord, key SupplyKeyFunc) map[string]decimal.Decimal {
	index := make(map[string]decimal.Decimal)
	for _, record := range supplies {
		k, ok := key(record)
		if !ok {
			continue
		}
		total := index[k]
		if record.AvailableQty.Valid {
			total = total.Add(record.AvailableQty.Decimal)
		}
		index[k] = total
	}
	return index
}
