// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cotsense/cotsense/internal/server"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <component-id> <query>",
		Short: "Explain why a component matches a query",
		Long:  "Asks the COTSense server for a natural-language explanation of why a recommended component fits the original query.",
		Args:  cobra.ExactArgs(2),
		RunE:  runExplain,
	}

	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverAddress(cmd))

	var body server.ExplainBody
	err := client.postJSON("/api/explain", map[string]any{
		"component_id": args[0],
		"query":        args[1],
	}, &body)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), body.Explanation)
	return nil
}
