// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cotsense/cotsense/internal/server"
)

func newReindexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the vector index from the component catalog",
		Long:  "Asks the server to re-embed every catalog component and rebuild the vector index. This calls the embedding provider once per component and may take a while for large catalogs.",
		RunE:  runReindex,
	}

	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runReindex(cmd *cobra.Command, _ []string) error {
	client := newAPIClient(serverAddress(cmd))

	fmt.Fprintln(cmd.OutOrStdout(), "Rebuilding index...")

	var body server.ReindexBody
	if err := client.postJSON("/api/admin/reindex", struct{}{}, &body); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d component(s) in %.1fms\n", body.Indexed, body.DurationMS)
	return nil
}
