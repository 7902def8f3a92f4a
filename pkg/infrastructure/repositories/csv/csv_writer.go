package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// StatusColumn is the name of the outcome column appended to the annotated
// demand batch.
const StatusColumn = "Match Status"

// Writer emits the annotated demand batch: every original column plus the
// rendered outcome status.
type Writer struct{}

// NewWriter creates a new CSV writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteAnnotated writes the demand records to filename with the original
// header plus StatusColumn. Rows shorter than the header are padded so every
// status lands in the same column.
func (w *Writer) WriteAnnotated(filename string, columns []string, demands []*entities.DemandRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create annotated file %s: %w", filename, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)

	header := make([]string, 0, len(columns)+1)
	header = append(header, columns...)
	header = append(header, StatusColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write annotated header: %w", err)
	}

	for _, record := range demands {
		row := make([]string, len(columns)+1)
		copy(row, record.Row)
		row[len(columns)] = record.Outcome().Status()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write annotated row %d: %w", record.RowIndex, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush annotated file: %w", err)
	}
	return nil
}
