// Example of using shipmatch as a library: build both batches in code, run
// the reconcile service and print each record's status.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/exfactory/shipmatch/pkg/application/services"
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/infrastructure/repositories/memory"
)

func main() {
	supplies := []*entities.SupplyRecord{
		{
			JobNo:        "J2301",
			PONumber:     "PO-1001",
			StyleRefNo:   "ST-88",
			Color:        "NAVY",
			AvailableQty: decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true},
		},
		{
			JobNo:        "J2301",
			PONumber:     "PO-1001",
			StyleRefNo:   "ST-88",
			Color:        "NAVY",
			AvailableQty: decimal.NullDecimal{Decimal: decimal.NewFromInt(50), Valid: true},
		},
		{
			JobNo:        "J2302",
			PONumber:     "PO-1002",
			StyleRefNo:   "ST-90",
			Color:        "RED",
			AvailableQty: decimal.NullDecimal{},
		},
	}

	demands := []*entities.DemandRecord{
		{PONumber: "PO-1001", RequestedQty: decimal.NewFromInt(200)},
		{PONumber: "PO-1002", RequestedQty: decimal.NewFromInt(80)},
		{PONumber: "PO-9999", StyleRefNo: "ST-90", Color: "RED", RequestedQty: decimal.NewFromInt(10)},
	}

	supplyRepo := memory.NewSupplyRepository()
	if err := supplyRepo.LoadSupplies(supplies); err != nil {
		log.Fatal(err)
	}
	demandRepo := memory.NewDemandRepository()
	if err := demandRepo.LoadDemands(&entities.DemandBatch{Records: demands}); err != nil {
		log.Fatal(err)
	}

	service := services.NewReconcileService()
	result, err := service.Reconcile(context.Background(), supplyRepo, demandRepo, entities.ReconcileConfig{})
	if err != nil {
		log.Fatal(err)
	}

	for _, record := range result.Demands {
		fmt.Printf("%-10s -> %s\n", record.PONumber, record.Outcome().Status())
	}
	fmt.Printf("\nTotal: %d, perfect matches: %d\n",
		result.Summary.Total, result.Summary.PerfectMatches())
}
