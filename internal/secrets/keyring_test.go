// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/cotsense/cotsense/internal/secrets"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func init() {
	// Use the mock keyring for all tests so they don't touch the real OS keyring.
	keyring.MockInit()
}

func TestKeyringStore_StoreAndRetrieve(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-store-retrieve"

	require.NoError(t, ks.Store(svc, "api-key", "sk-secret-123"))

	val, err := ks.Retrieve(svc, "api-key")
	require.NoError(t, err)
	assert.Equal(t, "sk-secret-123", val)
}

func TestKeyringStore_RetrieveNotFound(t *testing.T) {
	ks := secrets.NewKeyringStore()

	_, err := ks.Retrieve("no-such-service", "no-key")
	require.Error(t, err)
	assert.True(t, cotserr.HasCode(err, cotserr.CodeSecretNotFound), "expected CodeSecretNotFound, got: %v", err)
}

func TestKeyringStore_Delete(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-delete"

	require.NoError(t, ks.Store(svc, "temp-key", "temp-value"))
	require.NoError(t, ks.Delete(svc, "temp-key"))

	_, err := ks.Retrieve(svc, "temp-key")
	require.Error(t, err)
	assert.True(t, cotserr.HasCode(err, cotserr.CodeSecretNotFound))
}

func TestKeyringStore_List(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-list"

	keys, err := ks.List(svc)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, ks.Store(svc, "key-a", "val-a"))
	require.NoError(t, ks.Store(svc, "key-b", "val-b"))

	keys, err = ks.List(svc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"key-a", "key-b"}, keys)
}

func TestKeyringStore_EmptyInputs(t *testing.T) {
	ks := secrets.NewKeyringStore()

	assert.Error(t, ks.Store("", "key", "val"))
	assert.Error(t, ks.Store("svc", "", "val"))

	_, err := ks.Retrieve("", "key")
	assert.Error(t, err)

	assert.Error(t, ks.Delete("svc", ""))
}
