// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"fmt"
	"strings"
)

// FallbackExplanation synthesizes a recommendation explanation from the
// component's own fields. Used when no explanation provider is configured
// or an upstream call fails, so every result can still show something.
func FallbackExplanation(c Component, query string) string {
	parts := []string{fmt.Sprintf(
		"The %s from %s is recommended as a %s component that matches your query %q.",
		c.PartNumber, c.Manufacturer, strings.ToLower(c.Category), query,
	)}

	if c.SpecMatch != nil && *c.SpecMatch > 80 {
		parts = append(parts, fmt.Sprintf(
			"With a %.1f%% specification match, this component closely aligns with your requirements.",
			*c.SpecMatch,
		))
	} else if c.SpecMatch != nil && *c.SpecMatch > 60 {
		parts = append(parts, fmt.Sprintf(
			"This component provides a %.1f%% specification match, making it a suitable option for your application.",
			*c.SpecMatch,
		))
	}

	if c.Price != nil && c.Stock != nil {
		switch stock := strings.ToLower(*c.Stock); {
		case strings.Contains(stock, "in stock"):
			parts = append(parts, fmt.Sprintf(
				"At $%.2f, this component is competitively priced and currently in stock.", *c.Price,
			))
		case strings.Contains(stock, "low stock"):
			parts = append(parts, fmt.Sprintf(
				"Priced at $%.2f, this component is available but with limited stock.", *c.Price,
			))
		}
	}

	if len(c.Description) > 20 {
		desc := strings.ToLower(c.Description)
		// Truncate on runes so a multi-byte character is never split.
		if r := []rune(desc); len(r) > 100 {
			desc = string(r[:100])
		}
		parts = append(parts, fmt.Sprintf("This component is designed for %s...", desc))
	}

	return strings.Join(parts, " ")
}
