// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package explain

import (
	"fmt"
	"strings"

	"github.com/cotsense/cotsense/internal/catalog"
)

// BuildPrompt assembles the provider-agnostic explanation prompt for a
// component and the query that surfaced it. Missing optional fields render
// as explicit placeholders so the model does not invent values.
func BuildPrompt(c catalog.Component, query string) string {
	description := c.Description
	if description == "" {
		description = "No description available"
	}
	specifications := c.Specifications
	if specifications == "" {
		specifications = "No specifications available"
	}
	price := "Price not available"
	if c.Price != nil {
		price = fmt.Sprintf("$%.2f", *c.Price)
	}
	stock := "Stock status unknown"
	if c.Stock != nil && *c.Stock != "" {
		stock = *c.Stock
	}
	specMatch := "N/A"
	if c.SpecMatch != nil {
		specMatch = fmt.Sprintf("%.1f%%", *c.SpecMatch)
	}
	totalScore := "N/A"
	if c.TotalScore != nil {
		totalScore = fmt.Sprintf("%.1f%%", *c.TotalScore)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert electronics engineer helping users understand component recommendations.\n\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	fmt.Fprintf(&b, "Recommended Component:\n")
	fmt.Fprintf(&b, "- Part Number: %s\n", c.PartNumber)
	fmt.Fprintf(&b, "- Manufacturer: %s\n", c.Manufacturer)
	fmt.Fprintf(&b, "- Category: %s\n", c.Category)
	fmt.Fprintf(&b, "- Description: %s\n", description)
	fmt.Fprintf(&b, "- Specifications: %s\n", specifications)
	fmt.Fprintf(&b, "- Price: %s\n", price)
	fmt.Fprintf(&b, "- Stock Status: %s\n", stock)
	fmt.Fprintf(&b, "- Specification Match: %s\n", specMatch)
	fmt.Fprintf(&b, "- Total Score: %s\n\n", totalScore)
	b.WriteString(`Please provide a clear, concise explanation (2-3 paragraphs) of why this component is recommended for the user's query. Focus on:

1. How the component matches the user's requirements
2. Key technical specifications that make it suitable
3. Any advantages or considerations (price, availability, performance)
4. Practical application context

Keep the explanation technical but accessible, and avoid repeating information already provided above.`)

	return b.String()
}
