package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/exfactory/shipmatch/pkg/application/services"
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/domain/services/normalize"
	"github.com/exfactory/shipmatch/pkg/infrastructure/repositories/csv"
	"github.com/exfactory/shipmatch/pkg/infrastructure/repositories/memory"
	"github.com/exfactory/shipmatch/pkg/interfaces/cli/output"
)

// Config holds configuration for the reconcile command.
type Config struct {
	SupplyFile string
	DemandFile string
	OutputDir  string
	Format     string
	Verbose    bool
	Run        entities.ReconcileConfig
}

// ReconcileCommand loads both batches, runs the cascade matcher and renders
// the result.
type ReconcileCommand struct {
	config Config
	logger zerolog.Logger
}

// NewReconcileCommand creates a new reconcile command with the given
// configuration.
func NewReconcileCommand(config Config, logger zerolog.Logger) *ReconcileCommand {
	return &ReconcileCommand{config: config, logger: logger}
}

// Execute runs the reconcile command.
func (c *ReconcileCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
	}

	loader := csv.NewLoader()

	supplyRaw, err := loader.LoadBatch(c.config.SupplyFile, "supply")
	if err != nil {
		return fmt.Errorf("error loading supply batch: %w", err)
	}
	demandRaw, err := loader.LoadBatch(c.config.DemandFile, "demand")
	if err != nil {
		return fmt.Errorf("error loading demand batch: %w", err)
	}

	// Column validation is fatal and reports both batches' problems at once.
	if err := normalize.ValidateBatches(supplyRaw, demandRaw); err != nil {
		return err
	}

	normalizer := normalize.NewNormalizer()
	supplyBatch, err := normalizer.SupplyBatch(supplyRaw)
	if err != nil {
		return err
	}
	demandBatch, err := normalizer.DemandBatch(demandRaw)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ Batches loaded:\n")
		fmt.Printf("  Supply records: %d\n", len(supplyBatch.Records))
		fmt.Printf("  Demand records: %d\n", len(demandBatch.Records))
		fmt.Println()
	}

	supplyRepo := memory.NewSupplyRepository()
	if err := supplyRepo.LoadSupplies(supplyBatch.Records); err != nil {
		return fmt.Errorf("failed to load supply batch into repository: %w", err)
	}
	demandRepo := memory.NewDemandRepository()
	if err := demandRepo.LoadDemands(demandBatch); err != nil {
		return fmt.Errorf("failed to load demand batch into repository: %w", err)
	}

	sink := &consoleSink{verbose: c.config.Verbose, logger: c.logger}
	service := services.NewReconcileServiceWithProgress(sink)

	result, err := service.Reconcile(ctx, supplyRepo, demandRepo, c.config.Run)
	if err != nil {
		return fmt.Errorf("error running reconcile: %w", err)
	}

	c.logger.Info().
		Int("total", result.Summary.Total).
		Int("perfect_matches", result.Summary.PerfectMatches()).
		Dur("elapsed", result.Elapsed).
		Msg("reconcile completed")

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		MatchTime: result.Elapsed,
	}
	if err := output.Generate(result, demandBatch.Columns, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration.
func (c *ReconcileCommand) validateInputs() error {
	if c.config.SupplyFile == "" || c.config.DemandFile == "" {
		return fmt.Errorf("must specify both --supply and --demand CSV files")
	}
	for _, path := range []string{c.config.SupplyFile, c.config.DemandFile} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}
	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	return nil
}

// printHeader prints the command header information.
func (c *ReconcileCommand) printHeader() {
	fmt.Printf("🚀 Shipment Reconcile\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Supply: %s\n", c.config.SupplyFile)
	fmt.Printf("  Demand: %s\n", c.config.DemandFile)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	if c.config.Run.BuyerSpecific {
		fmt.Printf("Buyer-specific matching: enabled (%d flagged buyers)\n", len(c.config.Run.FlaggedBuyers))
	}
	fmt.Println()
}

// passLabels are the human-readable pass descriptions, in the order the
// strategies run.
var passLabels = map[string]string{
	entities.StrategyPO.Name():         "Matching by PO Number",
	entities.StrategyJobPO.Name():      "Matching by Job No (last4) + PO Number",
	entities.StrategyStyleColor.Name(): "Matching by Style Ref + Color",
	entities.StrategyPOJob.Name():      "Matching by PO Number + Job No (buyer)",
	entities.StrategyCombined.Name():   "Matching by Combined Style+PO (buyer)",
}

// consoleSink reports matcher progress on stdout (verbose) and through the
// structured logger.
type consoleSink struct {
	verbose bool
	logger  zerolog.Logger
	passes  int
}

// Verify interface compliance
var _ services.ProgressSink = (*consoleSink)(nil)

func (s *consoleSink) PassStarted(strategy string, pending int) {
	s.passes++
	label, ok := passLabels[strategy]
	if !ok {
		label = "Matching by " + strategy
	}
	if s.verbose {
		fmt.Printf("%d. %s... (%d records pending)\n", s.passes, label, pending)
	}
	s.logger.Debug().Str("strategy", strategy).Int("pending", pending).Msg("pass started")
}

func (s *consoleSink) Progress(strategy string, processed, pending int) {
	s.logger.Debug().
		Str("strategy", strategy).
		Int("processed", processed).
		Int("pending", pending).
		Msg("pass progress")
}

func (s *consoleSink) Note(message string) {
	if s.verbose {
		fmt.Printf("⚠️  %s\n", message)
	}
	s.logger.Warn().Msg(message)
}
