package entities

// RawBatch is a tabular batch as produced by a loader, before any
// normalization: the original header and the original row cells. Column names
// are matched positionally against Columns.
type RawBatch struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// SupplyBatch is the normalized supply-side batch.
type SupplyBatch struct {
	Records []*SupplyRecord
}

// DemandBatch is the normalized demand-side batch. Columns preserves the
// original header so annotated output can carry every source column through.
// HasBuyer records whether the source batch carried a buyer column at all,
// which is distinct from every record having a blank buyer.
type DemandBatch struct {
	Columns  []string
	Records  []*DemandRecord
	HasBuyer bool
}
