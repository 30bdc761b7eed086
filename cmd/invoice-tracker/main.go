package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/invoice-tracker/internal/config"
	"github.com/zombor/invoice-tracker/internal/invoice"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// rootConfig holds the flags shared by every subcommand
type rootConfig struct {
	salesReps    string
	paymentTerms string
	costCriteria string
	logLevel     string
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	var root rootConfig
	rootFlags := ff.NewFlagSet("invoice-tracker")
	rootFlags.StringVar(&root.salesReps, 0, "sales-reps", "Configs/salesReps.txt", "Sales rep codes file (CODE=Name per line)")
	rootFlags.StringVar(&root.paymentTerms, 0, "payment-terms", "Configs/paymentTerms.txt", "Payment terms file, one per line in priority order")
	rootFlags.StringVar(&root.costCriteria, 0, "cost-criteria", "Configs/costCriteria.yaml", "Cost classification criteria (YAML)")
	rootFlags.StringVar(&root.logLevel, 0, "log-level", "info", "Log level: debug, info, warn or error")
	rootFlags.BoolLong("version", "Show version information")

	rootCmd := &ff.Command{
		Name:      "invoice-tracker",
		Usage:     "invoice-tracker [FLAGS] <SUBCOMMAND> ...",
		ShortHelp: "extract, classify and reconcile sales invoice charges",
		Flags:     rootFlags,
		Subcommands: []*ff.Command{
			newProcessCommand(&root, rootFlags),
			newServeCommand(&root, rootFlags),
			newWatchCommand(&root, rootFlags),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ParseAndRun(ctx, os.Args[1:], ff.WithEnvVarPrefix("INVOICE_TRACKER"))
	switch {
	case err == nil:
	case errors.Is(err, ff.ErrHelp), errors.Is(err, ff.ErrNoExec):
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(rootCmd.GetSelected()))
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the default text logger at the configured level
func (r *rootConfig) setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(r.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", r.logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// processor sets up logging and builds the engine from the configuration files
func (r *rootConfig) processor() (*invoice.Processor, error) {
	if err := r.setupLogging(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.Paths{
		SalesReps:    r.salesReps,
		PaymentTerms: r.paymentTerms,
		CostCriteria: r.costCriteria,
	})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	slog.Info("Loaded configuration",
		"sales_reps", len(cfg.SalesReps()),
		"payment_terms", len(cfg.PaymentTerms()),
	)
	return invoice.NewProcessor(cfg, slog.Default()), nil
}
