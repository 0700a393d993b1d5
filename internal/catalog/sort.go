// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package catalog

import "sort"

// SortField selects which component attribute a result list is ordered by.
type SortField string

const (
	SortPartNumber   SortField = "part_number"
	SortManufacturer SortField = "manufacturer"
	SortCategory     SortField = "category"
	SortSpecMatch    SortField = "spec_match"
	SortTotalScore   SortField = "total_score"
	SortPrice        SortField = "price"
	SortStock        SortField = "stock"
)

// SortState holds the current sort field and direction of a result view.
type SortState struct {
	Field      SortField
	Descending bool
}

// DefaultSortState is total-score descending, the order results arrive in.
func DefaultSortState() SortState {
	return SortState{Field: SortTotalScore, Descending: true}
}

// Toggle returns the state after selecting field: selecting the active field
// flips the direction, selecting a new field resets to descending.
func (s SortState) Toggle(field SortField) SortState {
	if field == s.Field {
		return SortState{Field: field, Descending: !s.Descending}
	}
	return SortState{Field: field, Descending: true}
}

// SortComponents returns a new slice ordered by field. Numeric fields compare
// numerically, all others as case-sensitive lexical strings; missing optional
// values sort as the zero value for their type. The sort is stable, so
// flipping the direction twice restores the original relative order.
func SortComponents(components []Component, field SortField, descending bool) []Component {
	out := make([]Component, len(components))
	copy(out, components)

	if len(out) < 2 {
		return out
	}

	less := lessFunc(field)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	return out
}

func lessFunc(field SortField) func(a, b Component) bool {
	switch field {
	case SortSpecMatch:
		return func(a, b Component) bool { return deref(a.SpecMatch) < deref(b.SpecMatch) }
	case SortTotalScore:
		return func(a, b Component) bool { return deref(a.TotalScore) < deref(b.TotalScore) }
	case SortPrice:
		return func(a, b Component) bool { return deref(a.Price) < deref(b.Price) }
	case SortManufacturer:
		return func(a, b Component) bool { return a.Manufacturer < b.Manufacturer }
	case SortCategory:
		return func(a, b Component) bool { return a.Category < b.Category }
	case SortStock:
		return func(a, b Component) bool { return derefStr(a.Stock) < derefStr(b.Stock) }
	default:
		return func(a, b Component) bool { return a.PartNumber < b.PartNumber }
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
