// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package store

import "errors"

// Stores bundles the three persistence layers the server works with.
type Stores struct {
	Components ComponentStore
	Vectors    VectorStore
	SearchLog  SearchLogStore
}

// Close closes every store, collecting all errors.
func (s *Stores) Close() error {
	var errs []error
	if s.Components != nil {
		if err := s.Components.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Vectors != nil {
		if err := s.Vectors.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.SearchLog != nil {
		if err := s.SearchLog.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
