// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, []Component{
		{PartNumber: "LM358", Manufacturer: "TI", Category: "Op-Amp", Price: Ptr(0.45), Stock: Ptr("In Stock"), SpecMatch: Ptr(88.04), TotalScore: Ptr(91.25)},
		{PartNumber: "NE555", Manufacturer: "ST", Category: "Timer"},
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ExportHeader, rows[0])
	assert.Equal(t, []string{"LM358", "TI", "Op-Amp", "88.0", "91.2", "$0.45", "In Stock"}, rows[1])
	assert.Equal(t, []string{"NE555", "ST", "Timer", "N/A", "N/A", "N/A", "N/A"}, rows[2])
}

func TestExportCSVQuotesEmbeddedCommas(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, []Component{
		{PartNumber: "RES-1, 10k", Manufacturer: "Yageo", Category: "Resistor"},
	})
	require.NoError(t, err)

	// The comma inside the part number must survive a round trip.
	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "RES-1, 10k", rows[1][0])
}

func TestExportCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ExportHeader, rows[0])
}
