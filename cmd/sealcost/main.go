// Sealcost CLI - sealcoating estimation and scenario analysis
//
// Usage:
//   sealcost estimate --inputs job.json [--format table|json] [--archive]
//   sealcost sweep --inputs job.json --parameter business.profit_percent --values 5,10,15,20
//   sealcost serve [--port 8080]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"sealcost/api"
	"sealcost/decision/estimation"
	"sealcost/decision/sensitivity"
	"sealcost/internal/archive"
	"sealcost/internal/config"
	apitypes "sealcost/pkg/api"
	"sealcost/pkg/logging"
	"sealcost/pkg/units"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "sealcost",
		Usage:   "Sealcoating contractor estimation and scenario analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres DSN for the estimate archive (optional)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			logging.SetupWithLevel(logging.ParseLevel(c.String("log-level")))
			return nil
		},

		Commands: []*cli.Command{
			estimateCommand(),
			sweepCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ESTIMATE COMMAND
// =============================================================================

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Price one job from an inputs file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "inputs",
				Aliases:  []string{"i"},
				Usage:    "Path to job inputs JSON (project + business)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
			&cli.BoolFlag{
				Name:  "archive",
				Usage: "Persist the snapshot to the estimate archive",
			},
		},
		Action: runEstimate,
	}
}

func runEstimate(c *cli.Context) error {
	req, err := loadInputs(c.String("inputs"))
	if err != nil {
		return err
	}

	comp, err := estimation.NewEngine().Estimate(req.Project, req.Business)
	if err != nil {
		return fmt.Errorf("estimation failed: %w", err)
	}

	if c.Bool("archive") {
		dsn := c.String("database-url")
		if dsn == "" {
			return fmt.Errorf("--archive requires --database-url or DATABASE_URL")
		}
		ctx := context.Background()
		store, err := archive.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("archive unavailable: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("archive schema: %w", err)
		}
		id, err := store.SaveEstimate(ctx, req.Project, comp)
		if err != nil {
			return fmt.Errorf("archive write: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Archived snapshot %s\n", id)
	}

	switch c.String("format") {
	case "json":
		return printJSON(comp)
	default:
		printBreakdownTable(comp)
		return nil
	}
}

// =============================================================================
// SWEEP COMMAND
// =============================================================================

func sweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Sweep one parameter and chart total/profit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "inputs",
				Aliases:  []string{"i"},
				Usage:    "Path to job inputs JSON (project + business)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "parameter",
				Aliases:  []string{"p"},
				Usage:    "Parameter path, e.g. business.profit_percent",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "values",
				Usage:    "Comma-separated values to sweep",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
		},
		Action: runSweep,
	}
}

func runSweep(c *cli.Context) error {
	req, err := loadInputs(c.String("inputs"))
	if err != nil {
		return err
	}

	values, err := parseValues(c.String("values"))
	if err != nil {
		return err
	}

	analyzer := sensitivity.NewAnalyzer(estimation.NewEngine())
	samples, err := analyzer.Sweep(req.Project, req.Business, apitypes.ScenarioOverrides{},
		c.String("parameter"), values)
	if err != nil {
		return fmt.Errorf("sweep failed (supported parameters: %s): %w",
			strings.Join(sensitivity.Parameters(), ", "), err)
	}

	switch c.String("format") {
	case "json":
		return printJSON(samples)
	default:
		printSweepTable(c.String("parameter"), samples)
		return nil
	}
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Listen port",
				EnvVars: []string{"PORT"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg := config.Load()
	cfg.Port = c.Int("port")

	server := api.NewServer(cfg)

	if dsn := c.String("database-url"); dsn != "" {
		ctx := context.Background()
		store, err := archive.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("archive unavailable: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("archive schema: %w", err)
		}
		server.WithArchiver(store)
	}

	return server.StartWithGracefulShutdown()
}

// =============================================================================
// INPUT / OUTPUT HELPERS
// =============================================================================

func loadInputs(path string) (apitypes.EstimateRequest, error) {
	var req apitypes.EstimateRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read inputs: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parse inputs: %w", err)
	}
	if len(req.Business.Rates.CoverageGalPerSqFt) == 0 {
		req.Business.Rates = apitypes.DefaultProductionRates()
	}
	return req, nil
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad sweep value %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBreakdownTable(comp *apitypes.Computation) {
	fmt.Printf("%-16s %-44s %12s\n", "CATEGORY", "ITEM", "AMOUNT")
	fmt.Println(strings.Repeat("-", 74))
	for _, line := range comp.Breakdown {
		fmt.Printf("%-16s %-44s %12s\n",
			line.Category, line.Item, units.FormatUSD(line.Amount))
	}
	fmt.Println(strings.Repeat("-", 74))
	fmt.Printf("%-61s %12s\n", "Subtotal", units.FormatUSD(comp.Costs.Subtotal))
	fmt.Printf("%-61s %12s\n", "Overhead", units.FormatUSD(comp.Costs.Overhead))
	fmt.Printf("%-61s %12s\n", "Profit", units.FormatUSD(comp.Costs.Profit))
	fmt.Printf("%-61s %12s\n", "TOTAL", units.FormatUSD(comp.Costs.Total))

	if len(comp.Compliance) > 0 {
		fmt.Println()
		for _, issue := range comp.Compliance {
			fmt.Printf("[%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}
}

func printSweepTable(parameter string, samples []apitypes.SensitivitySample) {
	fmt.Printf("%-24s %14s %14s\n", parameter, "PROFIT", "TOTAL")
	fmt.Println(strings.Repeat("-", 54))
	for _, s := range samples {
		if s.Err != "" {
			fmt.Printf("%-24.2f %29s\n", s.Value, "error: "+s.Err)
			continue
		}
		fmt.Printf("%-24.2f %14s %14s\n",
			s.Value, units.FormatUSD(s.Profit), units.FormatUSD(s.Total))
	}
}
