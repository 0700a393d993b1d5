// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComponents() []Component {
	return []Component{
		{ID: "1", PartNumber: "LM358", Manufacturer: "TI", Category: "Op-Amp", Price: Ptr(0.45), TotalScore: Ptr(91.2), SpecMatch: Ptr(88.0), Stock: Ptr("In Stock")},
		{ID: "2", PartNumber: "NE555", Manufacturer: "ST", Category: "Timer", Price: Ptr(0.30), TotalScore: Ptr(85.5), SpecMatch: Ptr(82.4)},
		{ID: "3", PartNumber: "ATmega328P", Manufacturer: "Microchip", Category: "MCU", TotalScore: Ptr(78.0), SpecMatch: Ptr(75.1), Stock: Ptr("Low Stock")},
	}
}

func TestSortComponentsNumeric(t *testing.T) {
	sorted := SortComponents(sampleComponents(), SortPrice, false)

	require.Len(t, sorted, 3)
	// Missing price sorts as zero, ahead of every priced component.
	assert.Equal(t, "3", sorted[0].ID)
	assert.Equal(t, "2", sorted[1].ID)
	assert.Equal(t, "1", sorted[2].ID)
}

func TestSortComponentsLexical(t *testing.T) {
	sorted := SortComponents(sampleComponents(), SortPartNumber, false)

	// Case-sensitive byte order puts "ATmega328P" before "LM358" before "NE555".
	assert.Equal(t, []string{"3", "1", "2"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortComponentsDescendingIsReverse(t *testing.T) {
	asc := SortComponents(sampleComponents(), SortTotalScore, false)
	desc := SortComponents(sampleComponents(), SortTotalScore, true)

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestSortComponentsStableOnTies(t *testing.T) {
	components := []Component{
		{ID: "a", PartNumber: "X1", Category: "MCU"},
		{ID: "b", PartNumber: "X2", Category: "MCU"},
		{ID: "c", PartNumber: "X3", Category: "MCU"},
	}

	// All categories tie, so sorting twice in opposite directions must
	// restore the original relative order.
	once := SortComponents(components, SortCategory, true)
	twice := SortComponents(once, SortCategory, false)

	for i := range components {
		assert.Equal(t, components[i].ID, once[i].ID)
		assert.Equal(t, components[i].ID, twice[i].ID)
	}
}

func TestSortComponentsDoesNotMutateInput(t *testing.T) {
	components := sampleComponents()
	_ = SortComponents(components, SortPrice, true)

	assert.Equal(t, "1", components[0].ID)
	assert.Equal(t, "2", components[1].ID)
	assert.Equal(t, "3", components[2].ID)
}

func TestSortComponentsEmptyAndSingle(t *testing.T) {
	assert.Empty(t, SortComponents(nil, SortPrice, true))

	single := SortComponents([]Component{{ID: "only"}}, SortStock, false)
	require.Len(t, single, 1)
	assert.Equal(t, "only", single[0].ID)
}

func TestSortStateToggle(t *testing.T) {
	state := DefaultSortState()
	require.Equal(t, SortTotalScore, state.Field)
	require.True(t, state.Descending)

	// Same field flips direction, and flipping twice is a no-op.
	flipped := state.Toggle(SortTotalScore)
	assert.False(t, flipped.Descending)
	assert.Equal(t, state, flipped.Toggle(SortTotalScore))

	// A new field resets to descending.
	moved := flipped.Toggle(SortPrice)
	assert.Equal(t, SortPrice, moved.Field)
	assert.True(t, moved.Descending)
}
