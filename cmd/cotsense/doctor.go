// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cotsense/cotsense/internal/server"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics",
		Long:  "Check binary health, server reachability, configuration, data directory, and provider setup.",
		RunE:  runDoctor,
	}

	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	addr := serverAddress(cmd)
	dataDir := viper.GetString("storage.path")

	checks := []struct {
		name string
		fn   func() string
	}{
		{"Binary", checkBinary},
		{"Platform", checkPlatform},
		{"Server", func() string { return checkServer(addr) }},
		{"Config", checkConfig},
		{"Data", func() string { return checkData(dataDir) }},
		{"Embedding", checkEmbedding},
		{"Explanations", checkExplain},
	}

	for _, c := range checks {
		if _, err := fmt.Fprintf(w, "%-20s %s\n", c.name+":", c.fn()); err != nil {
			return err
		}
	}

	return nil
}

func checkBinary() string {
	return fmt.Sprintf("cotsense %s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

func checkPlatform() string {
	return fmt.Sprintf("%s/%s, Go %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func checkServer(addr string) string {
	client := newAPIClient(addr)
	var health server.HealthBody
	if err := client.getJSON("/health", &health); err != nil {
		if cotserr.HasCode(err, cotserr.CodeCLIServerNotRunning) {
			return fmt.Sprintf("not running at %s (run 'cotsense serve')", addr)
		}
		return fmt.Sprintf("error: %s", err)
	}
	return fmt.Sprintf("%s at %s (version %s)", health.Status, addr, health.Version)
}

func checkConfig() string {
	cfgFile := viper.ConfigFileUsed()
	if cfgFile != "" {
		return fmt.Sprintf("loaded from %s", cfgFile)
	}
	return "using defaults (no config file found)"
}

func checkData(dataDir string) string {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("no data directory at %s (created on first serve)", dataDir)
		}
		return fmt.Sprintf("error: %s", err)
	}
	if !info.IsDir() {
		return fmt.Sprintf("%s exists but is not a directory", dataDir)
	}

	dbPath := filepath.Join(dataDir, "components.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Sprintf("%s exists, no catalog database yet", dataDir)
	}
	return fmt.Sprintf("catalog database at %s", dbPath)
}

func checkEmbedding() string {
	provider := viper.GetString("embedding.provider")
	if viper.GetString("embedding.api_key") == "" {
		return fmt.Sprintf("%s (no API key configured)", provider)
	}
	return fmt.Sprintf("%s (API key configured)", provider)
}

func checkExplain() string {
	provider := viper.GetString("explain.provider")
	if provider == "" || provider == "none" {
		return "disabled (fallback explanations only)"
	}
	if viper.GetString("explain.api_key") == "" {
		return fmt.Sprintf("%s (no API key configured)", provider)
	}
	return fmt.Sprintf("%s (API key configured)", provider)
}
