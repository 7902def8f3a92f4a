package entities

import (
	"fmt"
	"strings"
)

// CombineSide selects which batch the combined styleRefNo-poNumber key is
// computed on; the other batch is looked up by its plain PO number.
type CombineSide int

const (
	CombineInSource CombineSide = iota
	CombineInTarget
)

func (s CombineSide) String() string {
	switch s {
	case CombineInSource:
		return "source"
	case CombineInTarget:
		return "target"
	default:
		return "unknown"
	}
}

// ParseCombineSide parses a combine-side name ("source" or "target",
// case-insensitive).
func ParseCombineSide(s string) (CombineSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "":
		return CombineInSource, nil
	case "target":
		return CombineInTarget, nil
	default:
		return CombineInSource, fmt.Errorf("invalid combine side: %q (expected source or target)", s)
	}
}

// ReconcileConfig holds the run-level matching options.
type ReconcileConfig struct {
	// BuyerSpecific routes demand records of flagged buyers through the
	// buyer strategy cascade instead of the standard one.
	BuyerSpecific bool
	// CombinePOIn selects the batch carrying the combined key for the
	// Combined strategy.
	CombinePOIn CombineSide
	// FlaggedBuyers lists buyer names (any casing) subject to
	// buyer-specific matching.
	FlaggedBuyers []string
}

// FlaggedSet returns the flagged buyer names as a normalized lookup set.
func (c ReconcileConfig) FlaggedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.FlaggedBuyers))
	for _, b := range c.FlaggedBuyers {
		b = strings.ToUpper(strings.TrimSpace(b))
		if b != "" {
			set[b] = struct{}{}
		}
	}
	return set
}
