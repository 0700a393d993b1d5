// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package secrets

import (
	"strings"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

const keyringScheme = "keyring://"

// IsKeyringURI reports whether value uses the keyring:// URI scheme.
func IsKeyringURI(value string) bool {
	return strings.HasPrefix(value, keyringScheme)
}

// ParseKeyringURI extracts service and key from a keyring://service/key URI.
// Returns an error if the URI is malformed.
func ParseKeyringURI(uri string) (service, key string, err error) {
	if !IsKeyringURI(uri) {
		return "", "", cotserr.Errorf(cotserr.CodeSecretInvalidInput, "not a keyring URI: %q", uri)
	}

	path := strings.TrimPrefix(uri, keyringScheme)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", cotserr.Errorf(cotserr.CodeSecretInvalidInput,
			"invalid keyring URI %q: expected keyring://service/key", uri)
	}

	return parts[0], parts[1], nil
}

// ResolveKeyringURI resolves a single keyring:// URI to its secret value.
// Returns the original value unchanged if it is not a keyring URI.
func ResolveKeyringURI(store Store, value string) (string, error) {
	if !IsKeyringURI(value) {
		return value, nil
	}

	service, key, err := ParseKeyringURI(value)
	if err != nil {
		return "", err
	}

	secret, err := store.Retrieve(service, key)
	if err != nil {
		return "", cotserr.Wrapf(err, cotserr.CodeSecretResolveFailure,
			"resolving keyring URI %q", value)
	}

	return secret, nil
}

// ResolveAPIKeys resolves every keyring:// reference among the given API key
// values, in place. Values that are plain keys pass through untouched. It
// stops at the first resolution failure so a misconfigured reference is
// surfaced at startup rather than on the first provider call.
func ResolveAPIKeys(store Store, keys ...*string) error {
	for _, k := range keys {
		if k == nil || !IsKeyringURI(*k) {
			continue
		}

		resolved, err := ResolveKeyringURI(store, *k)
		if err != nil {
			return err
		}
		*k = resolved
	}

	return nil
}
