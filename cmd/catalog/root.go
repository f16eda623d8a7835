package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"catalog/internal/config"
	"catalog/internal/logging"
	"catalog/internal/report"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath  string
	format   string
	logLevel string
	source   string

	cfg *config.AppConfig
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Analytics over a product catalog",
		Long: `catalog loads a product table from CSV or a SQL database and answers
grouped counts, rankings, rollups, text statistics and keyword search over it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file path (default ./catalog.yaml or ~/.config/catalog/config.yaml)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format: table, csv, tsv or json")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.source, "csv", "", "read products from this CSV file instead of the configured source")

	root.AddCommand(
		newReportCmd(a),
		newReportsCmd(a),
		newSearchCmd(a),
		newTUICmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	var err error
	if a.cfgPath == "" {
		a.cfg, _, err = config.LoadDefault()
	} else {
		a.cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return err
	}
	if a.format != "" {
		a.cfg.Output.Format = a.format
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.source != "" {
		a.cfg.Source = config.SourceConfig{Type: "csv", CSV: &config.CSVSourceConfig{Path: a.source, Delimiter: ","}}
	}
	a.log = logging.New(a.cfg.Log, cmd.ErrOrStderr())
	return nil
}

func (a *app) open(cmd *cobra.Command) (*report.Service, error) {
	return report.Open(cmd.Context(), a.cfg, a.log)
}
