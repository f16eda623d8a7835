package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"catalog/internal/render"
	"catalog/internal/report"
	"catalog/internal/tui"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "report <name>",
		Short:     "Run a named report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: report.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd)
			if err != nil {
				return err
			}
			rows, err := svc.Run(args[0])
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), rows, a.cfg.Output.Format)
		},
	}
}

func newReportsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, r := range report.Reports() {
				if _, err := fmt.Fprintf(out, "%-22s %s\n", r.Name, r.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <keywords...>",
		Short: "Find records containing every keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd)
			if err != nil {
				return err
			}
			rows, err := svc.Search(strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), rows, a.cfg.Output.Format)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse search results interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd)
			if err != nil {
				return err
			}
			idx, err := svc.Index()
			if err != nil {
				return err
			}
			summary := fmt.Sprintf("%s records, %s terms",
				humanize.Comma(int64(idx.Len())), humanize.Comma(int64(idx.Terms())))
			_, err = tea.NewProgram(tui.New(svc, summary, a.cfg.Limits.Search), tea.WithAltScreen()).Run()
			return err
		},
	}
}
