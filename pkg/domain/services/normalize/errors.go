package normalize

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports every required column absent from either batch.
// It is fatal: no matching runs and no partial output is produced.
type MissingColumnsError struct {
	Supply []string
	Demand []string
}

func (e *MissingColumnsError) Error() string {
	var parts []string
	if len(e.Supply) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns in supply batch: %s", strings.Join(e.Supply, ", ")))
	}
	if len(e.Demand) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns in demand batch: %s", strings.Join(e.Demand, ", ")))
	}
	if len(parts) == 0 {
		return "missing columns: none"
	}
	return strings.Join(parts, "; ")
}
