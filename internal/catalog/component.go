// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package catalog holds the component data model and the pure
// presentation logic built on it: sorting, CSV export, import parsing,
// and locally synthesized explanations.
package catalog

import (
	"fmt"
	"strings"
)

// Component is a catalog entry for a commercial off-the-shelf electronic part.
// Score, price, and stock fields are optional; a nil pointer means the value
// is unknown and renders as "N/A".
type Component struct {
	ID             string   `json:"id"`
	PartNumber     string   `json:"part_number"`
	Manufacturer   string   `json:"manufacturer"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	Specifications string   `json:"specifications,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Stock          *string  `json:"stock,omitempty"`
	SpecMatch      *float64 `json:"spec_match,omitempty"`
	TotalScore     *float64 `json:"total_score,omitempty"`
}

// DisplayPrice renders the price in USD with two decimals, or "N/A".
func (c Component) DisplayPrice() string {
	if c.Price == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *c.Price)
}

// DisplayStock renders the stock status label, or "N/A".
func (c Component) DisplayStock() string {
	if c.Stock == nil || *c.Stock == "" {
		return "N/A"
	}
	return *c.Stock
}

// DisplayScore renders a 0-100 score with one decimal, or "N/A".
func DisplayScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *score)
}

// CleanQuery normalizes a search query: trims and collapses whitespace.
// An empty result means the query is unusable.
func CleanQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// Ptr returns a pointer to v. Convenience for building optional fields.
func Ptr[T any](v T) *T {
	return &v
}
