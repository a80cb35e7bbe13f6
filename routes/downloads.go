/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// batchDownloadTTL is how long generated batch results stay downloadable.
var batchDownloadTTL = 15 * time.Minute

// storedDownload is one generated result file held for pickup.
type storedDownload struct {
	filename    string
	contentType string
	data        []byte
	expiresAt   time.Time
}

type downloadStore struct {
	mu        sync.RWMutex
	downloads map[string]storedDownload
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		downloads: make(map[string]storedDownload),
	}
}

// Put stores a download under a fresh random token. Expired entries are
// swept on each store so the map does not grow with abandoned uploads.
func (s *downloadStore) Put(d storedDownload, now time.Time) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	for existing, stored := range s.downloads {
		if now.After(stored.expiresAt) {
			delete(s.downloads, existing)
		}
	}

	s.downloads[token] = d

	return token
}

func (s *downloadStore) Get(token string, now time.Time) (storedDownload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.downloads[token]
	if !ok || now.After(d.expiresAt) {
		return storedDownload{}, errDownloadNotFound
	}

	return d, nil
}

var batchDownloads = newDownloadStore()
