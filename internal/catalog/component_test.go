// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDisplayHelpers(t *testing.T) {
	c := Component{Price: Ptr(12.5), Stock: Ptr("In Stock")}
	assert.Equal(t, "$12.50", c.DisplayPrice())
	assert.Equal(t, "In Stock", c.DisplayStock())
	assert.Equal(t, "91.2", DisplayScore(Ptr(91.25)))

	var empty Component
	assert.Equal(t, "N/A", empty.DisplayPrice())
	assert.Equal(t, "N/A", empty.DisplayStock())
	assert.Equal(t, "N/A", DisplayScore(nil))
}

func TestCleanQuery(t *testing.T) {
	assert.Equal(t, "low power op-amp", CleanQuery("  low   power\top-amp \n"))
	assert.Equal(t, "", CleanQuery("   \t\n"))
}

func TestFallbackExplanation(t *testing.T) {
	c := Component{
		PartNumber:   "LM358",
		Manufacturer: "TI",
		Category:     "Op-Amp",
		Description:  "Dual operational amplifier for low power designs",
		Price:        Ptr(0.45),
		Stock:        Ptr("In Stock"),
		SpecMatch:    Ptr(88.5),
	}

	got := FallbackExplanation(c, "low power op-amp")
	assert.Contains(t, got, "The LM358 from TI is recommended as a op-amp component")
	assert.Contains(t, got, `"low power op-amp"`)
	assert.Contains(t, got, "88.5% specification match")
	assert.Contains(t, got, "closely aligns")
	assert.Contains(t, got, "$0.45")
	assert.Contains(t, got, "currently in stock")
	assert.Contains(t, got, "designed for dual operational amplifier")
}

func TestFallbackExplanationModestMatch(t *testing.T) {
	c := Component{
		PartNumber:   "NE555",
		Manufacturer: "ST",
		Category:     "Timer",
		SpecMatch:    Ptr(65.0),
		Price:        Ptr(0.30),
		Stock:        Ptr("Low Stock"),
	}

	got := FallbackExplanation(c, "astable timer")
	assert.Contains(t, got, "65.0% specification match")
	assert.Contains(t, got, "suitable option")
	assert.Contains(t, got, "limited stock")
}

func TestFallbackExplanationTruncatesOnRunes(t *testing.T) {
	// 120 two-byte runes: a byte-wise cut at 100 would split one in half.
	c := Component{
		PartNumber:   "TSÖ100",
		Manufacturer: "Würth",
		Category:     "Inductor",
		Description:  strings.Repeat("ö", 120),
	}

	got := FallbackExplanation(c, "shielded inductor")
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, strings.Repeat("ö", 100)+"...")
	assert.NotContains(t, got, strings.Repeat("ö", 101))
}

func TestFallbackExplanationSparseComponent(t *testing.T) {
	c := Component{PartNumber: "X1", Manufacturer: "ACME", Category: "MCU"}

	got := FallbackExplanation(c, "anything")
	assert.Contains(t, got, "The X1 from ACME")
	assert.NotContains(t, got, "specification match")
	assert.NotContains(t, got, "$")
}
