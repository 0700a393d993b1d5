// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/store/sqlite"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func testComponents() []catalog.Component {
	return []catalog.Component{
		{ID: "c1", PartNumber: "LM358", Manufacturer: "TI", Category: "Op-Amp", Description: "Dual op-amp", Price: catalog.Ptr(0.45), Stock: catalog.Ptr("In Stock")},
		{ID: "c2", PartNumber: "NE555", Manufacturer: "ST", Category: "Timer"},
		{ID: "c3", PartNumber: "ATmega328P", Manufacturer: "Microchip", Category: "MCU", Specifications: "8-bit AVR, 32KB flash"},
	}
}

func TestComponentStore_BulkUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	n, err := cs.BulkUpsert(ctx, testComponents())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := cs.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "LM358", got.PartNumber)
	require.NotNil(t, got.Price)
	assert.InDelta(t, 0.45, *got.Price, 1e-9)

	// Optional fields come back nil, not zero.
	got, err = cs.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.Stock)
}

func TestComponentStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components-missing"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	_, err = cs.Get(ctx, "nope")
	require.Error(t, err)
	assert.True(t, cotserr.HasCode(err, cotserr.CodeStoreComponentNotFound))
}

func TestComponentStore_GetManyPreservesOrder(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components-order"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	_, err = cs.BulkUpsert(ctx, testComponents())
	require.NoError(t, err)

	got, err := cs.GetMany(ctx, []string{"c3", "missing", "c1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c3", got[0].ID)
	assert.Equal(t, "c1", got[1].ID)
}

func TestComponentStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components-upsert"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	_, err = cs.BulkUpsert(ctx, testComponents())
	require.NoError(t, err)

	updated := testComponents()[0]
	updated.Price = catalog.Ptr(0.55)
	_, err = cs.BulkUpsert(ctx, []catalog.Component{updated})
	require.NoError(t, err)

	got, err := cs.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got.Price)
	assert.InDelta(t, 0.55, *got.Price, 1e-9)

	count, err := cs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestComponentStore_BulkUpsertRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components-invalid"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	_, err = cs.BulkUpsert(ctx, []catalog.Component{{ID: "x", PartNumber: "P"}})
	require.Error(t, err)
	assert.True(t, cotserr.HasCode(err, cotserr.CodeStoreComponentInvalid))
}

func TestComponentStore_List(t *testing.T) {
	ctx := context.Background()
	cs, err := sqlite.NewComponentStore(testDBPath(t, "components-list"))
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	_, err = cs.BulkUpsert(ctx, testComponents())
	require.NoError(t, err)

	// Ordered by part number: ATmega328P, LM358, NE555.
	page, err := cs.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "ATmega328P", page[0].PartNumber)
	assert.Equal(t, "LM358", page[1].PartNumber)

	page, err = cs.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "NE555", page[0].PartNumber)
}
