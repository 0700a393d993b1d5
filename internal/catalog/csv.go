// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"encoding/csv"
	"io"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// ExportHeader is the fixed header row of a component CSV export.
var ExportHeader = []string{"Part Number", "Manufacturer", "Category", "Spec Match", "Total Score", "Price", "Stock"}

// ExportCSV writes one row per component to w: scores with one decimal,
// price with two, missing optionals as "N/A".
func ExportCSV(w io.Writer, components []Component) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return cotserr.Wrapf(err, cotserr.CodeCatalogExportWriteFailure, "writing CSV header")
	}

	for _, c := range components {
		row := []string{
			c.PartNumber,
			c.Manufacturer,
			c.Category,
			DisplayScore(c.SpecMatch),
			DisplayScore(c.TotalScore),
			c.DisplayPrice(),
			c.DisplayStock(),
		}
		if err := cw.Write(row); err != nil {
			return cotserr.Wrap(err, cotserr.CodeCatalogExportWriteFailure, "writing CSV row",
				cotserr.FieldComponentID(c.ID))
		}
	}

	cw.Flush()
	return cotserr.Wrapf(cw.Error(), cotserr.CodeCatalogExportWriteFailure, "flushing CSV output")
}
