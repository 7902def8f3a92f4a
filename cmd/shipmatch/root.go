package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/exfactory/shipmatch/pkg/infrastructure/config"
	"github.com/exfactory/shipmatch/pkg/interfaces/cli/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	logLevel string
	verbose  bool
	quiet    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "shipmatch",
		Short:         "Reconcile a demand-side shipment batch against available supply",
		Long: `shipmatch matches every record of a demand-side (target) batch against a
supply-side (source) batch using a cascade of key strategies, classifies the
quantity relationship of each hit and reports a matching summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "quiet output (warnings and errors only)")

	cmd.AddCommand(newReconcileCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newReconcileCmd(opts *rootOptions) *cobra.Command {
	var (
		supplyFile    string
		demandFile    string
		outputDir     string
		format        string
		configFile    string
		combinePOIn   string
		buyers        []string
		buyerSpecific bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match a demand batch against a supply batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg := config.Default()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
				}
				fileCfg = loaded
			}

			// Explicit flags override the config file.
			if cmd.Flags().Changed("buyer-specific") {
				fileCfg.BuyerSpecific = buyerSpecific
			}
			if cmd.Flags().Changed("combine-po-in") {
				fileCfg.CombinePOIn = combinePOIn
			}
			if cmd.Flags().Changed("buyers") {
				fileCfg.FlaggedBuyers = buyers
			}

			runCfg, err := fileCfg.ReconcileConfig()
			if err != nil {
				return err
			}

			logger := newLogger(opts, fileCfg.LogLevel)

			reconcile := commands.NewReconcileCommand(commands.Config{
				SupplyFile: supplyFile,
				DemandFile: demandFile,
				OutputDir:  outputDir,
				Format:     format,
				Verbose:    opts.verbose,
				Run:        runCfg,
			}, logger)

			return reconcile.Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&supplyFile, "supply", "", "path to the supply-side (source) CSV file")
	cmd.Flags().StringVar(&demandFile, "demand", "", "path to the demand-side (target) CSV file")
	cmd.Flags().StringVar(&outputDir, "output", "", "output directory for the annotated batch and summary")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, csv")
	cmd.Flags().StringVar(&configFile, "config", "", "path to a YAML run configuration file")
	cmd.Flags().BoolVar(&buyerSpecific, "buyer-specific", false, "enable buyer-specific matching for flagged buyers")
	cmd.Flags().StringVar(&combinePOIn, "combine-po-in", "source", "batch carrying the combined Style+PO key: source or target")
	cmd.Flags().StringSliceVar(&buyers, "buyers", nil, "flagged buyer names for buyer-specific matching")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shipmatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shipmatch %s\n", version)
		},
	}
}

// newLogger builds the CLI logger. Log level precedence (highest to lowest):
//
//	1. --log-level flag
//	2. -v/--verbose flag (debug)
//	3. -q/--quiet flag (warn)
//	4. config file log_level
//	5. LOG_LEVEL environment variable
//	6. default (info)
func newLogger(opts *rootOptions, configLevel string) zerolog.Logger {
	name := determineLogLevel(opts, configLevel)
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", name)
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func determineLogLevel(opts *rootOptions, configLevel string) string {
	if opts.logLevel != "" {
		return opts.logLevel
	}
	if opts.verbose && opts.quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if opts.verbose {
		return "debug"
	}
	if opts.quiet {
		return "warn"
	}
	if configLevel != "" {
		return configLevel
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		return env
	}
	return "info"
}
