// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package sqlite

import (
	"os"
	"path/filepath"

	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// OpenStores opens all stores under dataPath, creating the directory and
// database files as needed. On partial failure, already opened stores are
// closed before returning.
func OpenStores(dataPath string, vectorDims int) (*store.Stores, error) {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "creating data directory %s: %w", dataPath, err)
	}

	var closers []interface{ Close() error }
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	cs, err := NewComponentStore(filepath.Join(dataPath, "components.db"))
	if err != nil {
		return nil, cotserr.Wrapf(err, cotserr.CodeStoreDatabaseFailure, "creating component store")
	}
	closers = append(closers, cs)

	vs, err := NewVectorStore(filepath.Join(dataPath, "vectors.db"), vectorDims)
	if err != nil {
		cleanup()
		return nil, cotserr.Wrapf(err, cotserr.CodeStoreDatabaseFailure, "creating vector store")
	}
	closers = append(closers, vs)

	ls, err := NewSearchLogStore(filepath.Join(dataPath, "searchlog.db"))
	if err != nil {
		cleanup()
		return nil, cotserr.Wrapf(err, cotserr.CodeStoreDatabaseFailure, "creating search log store")
	}

	return &store.Stores{Components: cs, Vectors: vs, SearchLog: ls}, nil
}
