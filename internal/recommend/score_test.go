// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package recommend_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/recommend"
)

func TestSpecMatchScore(t *testing.T) {
	assert.InDelta(t, 100.0, recommend.SpecMatchScore(1), 1e-9)
	assert.InDelta(t, 50.0, recommend.SpecMatchScore(0), 1e-9)
	assert.InDelta(t, 0.0, recommend.SpecMatchScore(-1), 1e-9)
	assert.InDelta(t, 88.0, recommend.SpecMatchScore(0.76), 1e-9)
}

func TestTotalScoreAdjustments(t *testing.T) {
	base := recommend.SpecMatchScore(0.5) // 75.0

	tests := []struct {
		name string
		c    catalog.Component
		want float64
	}{
		{"bare", catalog.Component{}, base},
		{"in stock", catalog.Component{Stock: catalog.Ptr("In Stock")}, base + 5},
		{"low stock", catalog.Component{Stock: catalog.Ptr("Low Stock")}, base + 2},
		{"discontinued", catalog.Component{Stock: catalog.Ptr("Discontinued")}, base - 10},
		{"priced", catalog.Component{Price: catalog.Ptr(1.25)}, base + 1},
		{"zero price no bonus", catalog.Component{Price: catalog.Ptr(0.0)}, base},
		{"long description", catalog.Component{Description: strings.Repeat("d", 51)}, base + 2},
		{"long specifications", catalog.Component{Specifications: strings.Repeat("s", 21)}, base + 3},
		{
			"everything",
			catalog.Component{
				Stock:          catalog.Ptr("In Stock"),
				Price:          catalog.Ptr(1.25),
				Description:    strings.Repeat("d", 60),
				Specifications: strings.Repeat("s", 30),
			},
			base + 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, recommend.TotalScore(0.5, tt.c), 1e-9)
		})
	}
}

func TestTotalScoreClamped(t *testing.T) {
	rich := catalog.Component{
		Stock:          catalog.Ptr("In Stock"),
		Price:          catalog.Ptr(1.0),
		Description:    strings.Repeat("d", 60),
		Specifications: strings.Repeat("s", 30),
	}
	assert.InDelta(t, 100.0, recommend.TotalScore(1, rich), 1e-9)

	poor := catalog.Component{Stock: catalog.Ptr("Out of Stock")}
	assert.InDelta(t, 0.0, recommend.TotalScore(-1, poor), 1e-9)
}

func TestIndexText(t *testing.T) {
	c := catalog.Component{
		PartNumber:     "LM358",
		Manufacturer:   "TI",
		Category:       "Op-Amp",
		Description:    "Dual op-amp",
		Specifications: "3-32V supply",
	}
	assert.Equal(t,
		"Part: LM358 | Manufacturer: TI | Category: Op-Amp | Description: Dual op-amp | Specifications: 3-32V supply",
		recommend.IndexText(c))

	sparse := catalog.Component{PartNumber: "X1", Manufacturer: "ACME", Category: "MCU"}
	assert.Equal(t, "Part: X1 | Manufacturer: ACME | Category: MCU", recommend.IndexText(sparse))
}
