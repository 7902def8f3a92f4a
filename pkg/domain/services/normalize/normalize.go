// Package normalize canonicalizes batch column names and identity values so
// the two batches of a reconcile run are comparable, and validates that each
// batch carries its required columns before any matching happens.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// Canonical column names shared by both batches.
const (
	ColJobNo        = "jobno"
	ColPONumber     = "ponumber"
	ColStyleRefNo   = "stylerefno"
	ColColor        = "color"
	ColAvailableQty = "availableqty"
	ColRequestedQty = "requestedqty"
	ColBuyer        = "buyer"
)

// RequiredSupplyColumns is the canonical column set a supply batch must carry.
var RequiredSupplyColumns = []string{ColJobNo, ColPONumber, ColAvailableQty, ColStyleRefNo, ColColor}

// RequiredDemandColumns is the canonical column set a demand batch must
// carry; the buyer column is optional.
var RequiredDemandColumns = []string{ColJobNo, ColPONumber, ColRequestedQty, ColStyleRefNo, ColColor}

// columnAliases maps legacy spreadsheet column names onto canonical names.
var columnAliases = map[string]string{
	"exfactoryqty": ColAvailableQty,
	"shipqty":      ColRequestedQty,
	"buyername":    ColBuyer,
}

// Normalizer canonicalizes column names and identity values.
type Normalizer struct {
	upper cases.Caser
}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{upper: cases.Upper(language.Und)}
}

// CanonicalColumn cleans a raw column name into its canonical comparable
// form: trimmed, lower-cased, with spaces, underscores and hyphens removed.
// "PO Number", "po_number" and "PONumber" all canonicalize to "ponumber".
func CanonicalColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	name = replacer.Replace(name)
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}

// Value normalizes an identity-bearing cell for matching: trimmed and
// upper-cased, so matching is case- and whitespace-insensitive.
func (n *Normalizer) Value(cell string) string {
	return n.upper.String(strings.TrimSpace(cell))
}

// columnIndex maps each canonical column name to its position in the header.
// The first occurrence of a duplicated name wins.
func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		canonical := CanonicalColumn(col)
		if _, seen := index[canonical]; !seen {
			index[canonical] = i
		}
	}
	return index
}

func missingColumns(index map[string]int, required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateBatches checks both raw batches for their required columns. It
// reports every missing column of both batches in a single
// MissingColumnsError; validation failure is fatal for the whole run.
func ValidateBatches(supply, demand *entities.RawBatch) error {
	supplyMissing := missingColumns(columnIndex(supply.Columns), RequiredSupplyColumns)
	demandMissing := missingColumns(columnIndex(demand.Columns), RequiredDemandColumns)
	if len(supplyMissing) > 0 || len(demandMissing) > 0 {
		return &MissingColumnsError{Supply: supplyMissing, Demand: demandMissing}
	}
	return nil
}

// SupplyBatch builds the normalized supply batch from a validated raw batch.
func (n *Normalizer) SupplyBatch(raw *entities.RawBatch) (*entities.SupplyBatch, error) {
	if missing := missingColumns(columnIndex(raw.Columns), RequiredSupplyColumns); len(missing) > 0 {
		return nil, &MissingColumnsError{Supply: missing}
	}
	index := columnIndex(raw.Columns)
	records := make([]*entities.SupplyRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		records = append(records, &entities.SupplyRecord{
			RowIndex:     i,
			JobNo:        n.Value(cell(row, index, ColJobNo)),
			PONumber:     n.Value(cell(row, index, ColPONumber)),
			StyleRefNo:   n.Value(cell(row, index, ColStyleRefNo)),
			Color:        n.Value(cell(row, index, ColColor)),
			Buyer:        n.Value(cell(row, index, ColBuyer)),
			AvailableQty: entities.ParseAvailableQty(cell(row, index, ColAvailableQty)),
		})
	}
	return &entities.SupplyBatch{Records: records}, nil
}

// DemandBatch builds the normalized demand batch from a validated raw batch.
// The original row cells are retained on every record for pass-through
// output.
func (n *Normalizer) DemandBatch(raw *entities.RawBatch) (*entities.DemandBatch, error) {
	if missing := missingColumns(columnIndex(raw.Columns), RequiredDemandColumns); len(missing) > 0 {
		return nil, &MissingColumnsError{Demand: missing}
	}
	index := columnIndex(raw.Columns)
	_, hasBuyer := index[ColBuyer]
	records := make([]*entities.DemandRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		records = append(records, &entities.DemandRecord{
			RowIndex:     i,
			Row:          row,
			JobNo:        n.Value(cell(row, index, ColJobNo)),
			PONumber:     n.Value(cell(row, index, ColPONumber)),
			StyleRefNo:   n.Value(cell(row, index, ColStyleRefNo)),
			Color:        n.Value(cell(row, index, ColColor)),
			Buyer:        n.Value(cell(row, index, ColBuyer)),
			RequestedQty: entities.ParseRequestedQty(cell(row, index, ColRequestedQty)),
		})
	}
	return &entities.DemandBatch{
		Columns:  raw.Columns,
		Records:  records,
		HasBuyer: hasBuyer,
	}, nil
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
