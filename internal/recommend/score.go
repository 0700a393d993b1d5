// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package recommend

import (
	"math"
	"strings"

	"github.com/cotsense/cotsense/internal/catalog"
)

// SpecMatchScore maps a cosine similarity in [-1, 1] to a 0-100 match
// percentage, rounded to one decimal. Similarity 1 is a 100% match,
// 0 is 50%, -1 is 0%.
func SpecMatchScore(similarity float64) float64 {
	return round1(((similarity + 1) / 2) * 100)
}

// TotalScore combines the spec match with availability and data completeness
// adjustments, clamped to [0, 100] and rounded to one decimal.
func TotalScore(similarity float64, c catalog.Component) float64 {
	score := SpecMatchScore(similarity)

	var stock string
	if c.Stock != nil {
		stock = strings.ToLower(*c.Stock)
	}
	switch {
	case strings.Contains(stock, "in stock") || strings.Contains(stock, "available"):
		score += 5
	case strings.Contains(stock, "low stock"):
		score += 2
	case strings.Contains(stock, "out of stock") || strings.Contains(stock, "discontinued"):
		score -= 10
	}

	if c.Price != nil && *c.Price > 0 {
		score += 1
	}
	if len(c.Description) > 50 {
		score += 2
	}
	if len(c.Specifications) > 20 {
		score += 3
	}

	return round1(math.Max(0, math.Min(100, score)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// IndexText assembles the text embedded for a component. Field labels keep
// short values distinguishable after concatenation.
func IndexText(c catalog.Component) string {
	parts := []string{
		"Part: " + c.PartNumber,
		"Manufacturer: " + c.Manufacturer,
		"Category: " + c.Category,
	}
	if c.Description != "" {
		parts = append(parts, "Description: "+c.Description)
	}
	if c.Specifications != "" {
		parts = append(parts, "Specifications: "+c.Specifications)
	}
	return strings.Join(parts, " | ")
}
