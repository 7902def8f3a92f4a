package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/exfactory/shipmatch/pkg/application/dto"
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	shipcsv "github.com/exfactory/shipmatch/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation.
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	MatchTime time.Duration
}

// Generate renders the reconcile result in the configured format and, when an
// output directory is set, writes the annotated demand batch next to it.
func Generate(result *dto.ReconcileResult, columns []string, config Config) error {
	switch config.Format {
	case "text":
		if err := generateTextOutput(result, config); err != nil {
			return err
		}
	case "json":
		if err := generateJSONOutput(result, config); err != nil {
			return err
		}
	case "csv":
		if err := generateCSVOutput(result, config); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		annotated := filepath.Join(config.OutputDir, "demand_annotated.csv")
		writer := shipcsv.NewWriter()
		if err := writer.WriteAnnotated(annotated, columns, result.Demands); err != nil {
			return err
		}
		if config.Verbose {
			fmt.Printf("💾 Annotated demand batch saved to: %s\n", annotated)
		}
	}

	return nil
}

// generateTextOutput prints the human-readable matching summary.
func generateTextOutput(result *dto.ReconcileResult, config Config) error {
	s := result.Summary

	fmt.Printf("=== Matching Summary ===\n")
	fmt.Printf("Perfect Matches: %d\n", s.PerfectMatches())
	fmt.Printf("Less Shipment Cases: %d\n", s.LabelCounts[entities.LabelLessShipment])
	fmt.Printf("Over Shipment Cases: %d\n", s.LabelCounts[entities.LabelOverShipment])
	fmt.Printf("No Shipment Cases: %d\n", s.LabelCounts[entities.LabelNoShipment])
	fmt.Printf("No Matches Found: %d\n", s.LabelCounts[entities.LabelNoMatchFound])
	if n := s.LabelCounts[entities.LabelNoMatchBuyer]; n > 0 {
		fmt.Printf("No Matches (Buyer Specific): %d\n", n)
	}
	fmt.Printf("Total Records Processed: %d\n\n", s.Total)

	fmt.Printf("📊 Matches by strategy:\n")
	for _, strategy := range entities.Strategies {
		if n := s.StrategyCounts[strategy]; n > 0 {
			fmt.Printf("  %-18s %d\n", strategy.DisplayName()+":", n)
		}
	}
	fmt.Printf("Match Time: %v\n", config.MatchTime)

	return nil
}

// summaryView is the JSON shape of the match summary.
type summaryView struct {
	Labels     map[string]int `json:"labels"`
	Strategies map[string]int `json:"strategies"`
	Total      int            `json:"total"`
	MatchTime  string         `json:"match_time"`
}

func newSummaryView(s *entities.MatchSummary, matchTime time.Duration) summaryView {
	view := summaryView{
		Labels:     make(map[string]int),
		Strategies: make(map[string]int),
		Total:      s.Total,
		MatchTime:  matchTime.String(),
	}
	for _, label := range entities.TerminalLabels {
		if n := s.LabelCounts[label]; n > 0 {
			view.Labels[label.String()] = n
		}
	}
	for _, strategy := range entities.Strategies {
		if n := s.StrategyCounts[strategy]; n > 0 {
			view.Strategies[strategy.Name()] = n
		}
	}
	return view
}

// generateJSONOutput prints or saves the summary as JSON.
func generateJSONOutput(result *dto.ReconcileResult, config Config) error {
	jsonData, err := json.MarshalIndent(newSummaryView(result.Summary, config.MatchTime), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "match_summary.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("💾 JSON summary saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput saves the summary as CSV rows; the annotated demand
// batch itself is written by Generate.
func generateCSVOutput(result *dto.ReconcileResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "match_summary.csv")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create summary CSV: %w", err)
	}
	defer file.Close()

	s := result.Summary
	fmt.Fprintf(file, "metric,value\n")
	for _, label := range entities.TerminalLabels {
		fmt.Fprintf(file, "%s,%d\n", label, s.LabelCounts[label])
	}
	for _, strategy := range entities.Strategies {
		fmt.Fprintf(file, "strategy %s,%d\n", strategy.Name(), s.StrategyCounts[strategy])
	}
	fmt.Fprintf(file, "total,%d\n", s.Total)

	if config.Verbose {
		fmt.Printf("💾 CSV summary saved to: %s\n", filename)
	}
	return nil
}
