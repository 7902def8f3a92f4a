package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// Loader reads tabular batches from CSV files. It does no normalization:
// headers and cells are handed to the domain normalizer untouched so the
// annotated output can preserve the original columns byte for byte.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadBatch reads a CSV file into a raw batch. The first record is the
// header; at least one data row is required. Rows may be ragged (shorter
// than the header); missing cells read as blank downstream.
func (l *Loader) LoadBatch(filename, name string) (*entities.RawBatch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have a header and at least one data row", name)
	}

	return &entities.RawBatch{
		Name:    name,
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}
