// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/server"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog for matching components",
		Long:  "Sends a natural-language query to the COTSense server and prints ranked component recommendations.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().IntP("top-k", "k", 0, "number of results (0 for the server default)")
	cmd.Flags().String("csv", "", "write results as CSV to a file, or - for stdout")
	cmd.Flags().BoolP("interactive", "i", false, "browse results in an interactive table")
	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	topK, _ := cmd.Flags().GetInt("top-k")
	csvPath, _ := cmd.Flags().GetString("csv")
	interactive, _ := cmd.Flags().GetBool("interactive")

	client := newAPIClient(serverAddress(cmd))

	result, err := fetchRecommendations(client, query, topK)
	if err != nil {
		return err
	}

	if csvPath != "" {
		return writeResultsCSV(cmd.OutOrStdout(), csvPath, result.Components)
	}

	if interactive {
		model := newResultsModel(client, result.Query, result.Components)
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return cotserr.Wrap(err, cotserr.CodeCLIRequestFailure, "running interactive view")
		}
		return nil
	}

	printResultsTable(cmd.OutOrStdout(), result)
	return nil
}

func fetchRecommendations(client *apiClient, query string, topK int) (*server.RecommendBody, error) {
	req := map[string]any{"query": query}
	if topK > 0 {
		req["top_k"] = topK
	}

	var result server.RecommendBody
	if err := client.postJSON("/api/recommend", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// writeResultsCSV exports components to the given path, or stdout when the
// path is "-".
func writeResultsCSV(stdout io.Writer, path string, components []catalog.Component) error {
	if path == "-" {
		return catalog.ExportCSV(stdout, components)
	}

	f, err := os.Create(path)
	if err != nil {
		return cotserr.Wrapf(err, cotserr.CodeCatalogExportWriteFailure, "creating %s", path)
	}
	if err := catalog.ExportCSV(f, components); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cotserr.Wrapf(err, cotserr.CodeCatalogExportWriteFailure, "closing %s", path)
	}
	return nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	resultMetaStyle  = lipgloss.NewStyle().Faint(true)
)

func printResultsTable(w io.Writer, result *server.RecommendBody) {
	if len(result.Components) == 0 {
		fmt.Fprintf(w, "No components found for %q\n", result.Query)
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Part Number", "Manufacturer", "Category", "Match", "Score", "Price", "Stock").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			return tableCellStyle
		})

	for _, c := range result.Components {
		t.Row(
			c.PartNumber,
			c.Manufacturer,
			c.Category,
			catalog.DisplayScore(c.SpecMatch),
			catalog.DisplayScore(c.TotalScore),
			c.DisplayPrice(),
			c.DisplayStock(),
		)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, resultMetaStyle.Render(
		fmt.Sprintf("%d result(s) for %q in %.1fms", result.Total, result.Query, result.ProcessingTimeMS)))
}
