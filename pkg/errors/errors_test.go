// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncludesCode(t *testing.T) {
	err := cotserr.New(
		cotserr.CodeConfigValidateInvalidValue,
		"invalid embedding configuration",
		cotserr.Field("provider", "google"),
	)

	require.Error(t, err)
	assert.Equal(t, cotserr.CodeConfigValidateInvalidValue, cotserr.CodeOf(err))
	assert.True(t, cotserr.HasCode(err, cotserr.CodeConfigValidateInvalidValue))
	assert.Contains(t, err.Error(), "invalid embedding configuration")
}

func TestErrorfWrapsInnerError(t *testing.T) {
	inner := stderrors.New("disk full")
	err := cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "write failed: %w", inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, cotserr.CodeStoreDatabaseFailure, cotserr.CodeOf(err))
}

func TestWrapPreservesWrappedErrorAndCode(t *testing.T) {
	root := stderrors.New("record missing")
	err := cotserr.Wrap(
		root,
		cotserr.CodeStoreComponentNotFound,
		"loading component",
		cotserr.FieldComponentID("c-42"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, cotserr.CodeStoreComponentNotFound, cotserr.CodeOf(err))
	assert.True(t, cotserr.IsNotFound(err))
}

func TestWrapRecodesCodedError(t *testing.T) {
	inner := cotserr.New(cotserr.CodeStoreComponentNotFound, "record missing")
	err := cotserr.Wrap(inner, cotserr.CodeExplainComponentMissing, "component not found",
		cotserr.FieldComponentID("c-42"))

	require.Error(t, err)
	// The outermost wrap's code wins over the cause's code.
	assert.Equal(t, cotserr.CodeExplainComponentMissing, cotserr.CodeOf(err))
	assert.True(t, cotserr.HasCode(err, cotserr.CodeExplainComponentMissing))
	assert.True(t, cotserr.IsNotFound(err))
	assert.ErrorIs(t, err, inner)

	err = cotserr.Wrapf(inner, cotserr.CodeSecretResolveFailure, "resolving %s", "embedding.api_key")
	assert.Equal(t, cotserr.CodeSecretResolveFailure, cotserr.CodeOf(err))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, cotserr.Wrap(nil, cotserr.CodeStoreDatabaseFailure, "ignored"))
	assert.NoError(t, cotserr.Wrapf(nil, cotserr.CodeStoreDatabaseFailure, "ignored %d", 1))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, cotserr.Code(""), cotserr.CodeOf(stderrors.New("plain")))
	assert.Equal(t, cotserr.Code(""), cotserr.CodeOf(nil))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, cotserr.IsNotFound(cotserr.New(cotserr.CodeExplainComponentMissing, "gone")))
	assert.True(t, cotserr.IsInvalidInput(cotserr.New(cotserr.CodeSearchQueryInvalid, "empty")))
	assert.True(t, cotserr.IsUnavailable(cotserr.New(cotserr.CodeSearchIndexNotLoaded, "no index")))
	assert.True(t, cotserr.IsUpstreamFailure(cotserr.New(cotserr.CodeSearchEmbedFailure, "embed")))
	assert.False(t, cotserr.IsNotFound(nil))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", cotserr.New(cotserr.CodeStoreComponentNotFound, "x"), http.StatusNotFound},
		{"invalid input", cotserr.New(cotserr.CodeSearchQueryInvalid, "x"), http.StatusBadRequest},
		{"unavailable", cotserr.New(cotserr.CodeExplainNotConfigured, "x"), http.StatusServiceUnavailable},
		{"upstream", cotserr.New(cotserr.CodeExplainUpstreamFailure, "x"), http.StatusBadGateway},
		{"internal", cotserr.New(cotserr.CodeServerInternalFailure, "x"), http.StatusInternalServerError},
		{"plain", stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cotserr.HTTPStatus(tt.err))
		})
	}
}

func TestJoinCombinesErrors(t *testing.T) {
	a := stderrors.New("first")
	b := stderrors.New("second")
	err := cotserr.Join(a, b)

	require.Error(t, err)
	assert.ErrorIs(t, err, a)
	assert.ErrorIs(t, err, b)
	assert.Equal(t, cotserr.CodeServerInternalFailure, cotserr.CodeOf(err))
}
