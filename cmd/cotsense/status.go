// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cotsense/cotsense/internal/server"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

var (
	statusHealthyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusDegradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusDownStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusLabelStyle    = lipgloss.NewStyle().Bold(true).Width(16)
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server health and catalog statistics",
		RunE:  runStatus,
	}

	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	client := newAPIClient(serverAddress(cmd))
	out := cmd.OutOrStdout()

	var health server.HealthBody
	if err := client.getJSON("/health", &health); err != nil {
		if cotserr.HasCode(err, cotserr.CodeCLIServerNotRunning) {
			fmt.Fprintln(out, statusDownStyle.Render("Server is not running"))
			return err
		}
		return err
	}

	var status server.StatusBody
	if err := client.getJSON("/api/status", &status); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("Status"), renderHealth(health.Status))
	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("Version"), status.Version)
	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("Database"), renderBool(health.DatabaseConnected, "connected", "unavailable"))
	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("Index"), renderBool(health.IndexLoaded, "loaded", "empty"))
	fmt.Fprintf(out, "%s %d\n", statusLabelStyle.Render("Components"), status.Components)
	fmt.Fprintf(out, "%s %d\n", statusLabelStyle.Render("Vectors"), status.Vectors)
	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("Index in sync"), renderBool(status.IndexInSync, "yes", "no (run reindex)"))
	fmt.Fprintf(out, "%s %d total, %d today\n", statusLabelStyle.Render("Searches"), status.Searches, status.SearchesToday)
	fmt.Fprintf(out, "%s %s\n", statusLabelStyle.Render("AI explanations"), renderBool(status.ExplainConfigured, "configured", "not configured"))

	return nil
}

func renderHealth(status string) string {
	switch status {
	case "healthy":
		return statusHealthyStyle.Render(status)
	case "degraded":
		return statusDegradedStyle.Render(status)
	default:
		return statusDownStyle.Render(status)
	}
}

func renderBool(ok bool, yes, no string) string {
	if ok {
		return statusHealthyStyle.Render(yes)
	}
	return statusDegradedStyle.Render(no)
}
