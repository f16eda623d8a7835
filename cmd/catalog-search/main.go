package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"catalog/internal/config"
	"catalog/internal/logging"
	"catalog/internal/report"
	"catalog/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./catalog.yaml or ~/.config/catalog/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		cfg.Source = config.SourceConfig{Type: "csv", CSV: &config.CSVSourceConfig{Path: args[0], Delimiter: ","}}
	default:
		fmt.Println("Usage: catalog-search [--config=catalog.yaml] [products.csv]")
		os.Exit(1)
	}

	// the TUI owns the terminal, so only errors reach stderr
	cfg.Log.Level = "error"
	logger := logging.New(cfg.Log, os.Stderr)

	svc, err := report.Open(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}
	idx, err := svc.Index()
	if err != nil {
		log.Fatalf("index failed: %v", err)
	}
	summary := fmt.Sprintf("%s records, %s terms", humanize.Comma(int64(idx.Len())), humanize.Comma(int64(idx.Terms())))

	m := tui.New(svc, summary, cfg.Limits.Search)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
