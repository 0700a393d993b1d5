// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cotsense/cotsense/internal/catalog"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a component catalog CSV into the server",
		Long:  "Uploads a catalog CSV to the server. The vector index is not rebuilt automatically; run reindex afterwards to make new components searchable.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	cmd.Flags().StringP("address", "a", "", "server address (host:port)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return cotserr.Wrapf(err, cotserr.CodeCLIInputInvalid, "opening %s", args[0])
	}
	defer func() { _ = f.Close() }()

	client := newAPIClient(serverAddress(cmd))

	var report catalog.ImportReport
	if err := client.postRaw("/api/admin/import", "text/csv", f, &report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d row(s): %d imported, %d skipped\n",
		report.Parsed, report.Imported, report.Skipped)
	if report.Imported > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'cotsense reindex' to make imported components searchable.")
	}
	return nil
}
