// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// columnAliases maps the header spellings seen in vendor exports to
// canonical field names.
var columnAliases = map[string]string{
	"part number":    "part_number",
	"part_number":    "part_number",
	"partnumber":     "part_number",
	"manufacturer":   "manufacturer",
	"category":       "category",
	"description":    "description",
	"specifications": "specifications",
	"price":          "price",
	"stock":          "stock",
	"id":             "id",
}

// ImportReport summarizes one catalog import.
type ImportReport struct {
	Parsed   int `json:"parsed"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ParseCSV reads a component CSV and returns cleaned, deduplicated
// components. Rows missing a required field or carrying a negative price
// are skipped rather than failing the import; later duplicates of the
// same part number and manufacturer lose to the first occurrence.
// Components without an id column get a fresh UUID.
func ParseCSV(r io.Reader) ([]Component, ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ImportReport{}, cotserr.Wrapf(err, cotserr.CodeCatalogImportParseInvalid, "reading CSV header")
	}

	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = columnAliases[strings.ToLower(strings.TrimSpace(name))]
	}

	for _, required := range []string{"part_number", "manufacturer", "category"} {
		found := false
		for _, f := range fields {
			if f == required {
				found = true
				break
			}
		}
		if !found {
			return nil, ImportReport{}, cotserr.New(cotserr.CodeCatalogImportParseInvalid,
				"required column missing", cotserr.Field("column", required))
		}
	}

	var (
		report     ImportReport
		components []Component
		seen       = map[string]bool{}
	)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ImportReport{}, cotserr.Wrapf(err, cotserr.CodeCatalogImportParseInvalid, "reading CSV row")
		}

		report.Parsed++

		c, ok := componentFromRecord(fields, record)
		if !ok {
			report.Skipped++
			continue
		}

		key := c.PartNumber + "\x00" + c.Manufacturer
		if seen[key] {
			report.Skipped++
			continue
		}
		seen[key] = true

		if c.ID == "" {
			c.ID = uuid.NewString()
		}

		components = append(components, c)
		report.Imported++
	}

	return components, report, nil
}

func componentFromRecord(fields, record []string) (Component, bool) {
	var c Component

	for i, field := range fields {
		if i >= len(record) || field == "" {
			continue
		}

		value := cleanCell(record[i])
		if value == "" {
			continue
		}

		switch field {
		case "id":
			c.ID = value
		case "part_number":
			c.PartNumber = value
		case "manufacturer":
			c.Manufacturer = value
		case "category":
			c.Category = value
		case "description":
			c.Description = value
		case "specifications":
			c.Specifications = value
		case "stock":
			c.Stock = Ptr(value)
		case "price":
			price, err := strconv.ParseFloat(strings.TrimPrefix(value, "$"), 64)
			if err == nil && price >= 0 {
				c.Price = Ptr(price)
			}
		}
	}

	if c.PartNumber == "" || c.Manufacturer == "" || c.Category == "" {
		return Component{}, false
	}

	return c, true
}

// cleanCell strips whitespace and the placeholder spellings of "no value".
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "nan", "NaN", "None", "N/A":
		return ""
	}
	return s
}
