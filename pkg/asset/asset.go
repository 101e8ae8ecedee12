// Package asset defines the monitored assets that risk scores are
// attributed to, and a file-backed inventory store.
package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/riskplane/riskplane-core/internal/jsonx"
)

// ErrNotFound is returned when an asset id is not in the store.
var ErrNotFound = errors.New("asset not found")

// DefaultCriticality is assumed for assets that do not declare one.
const DefaultCriticality = 0.5

// Asset is a scored entity: a host, a database, a service.
type Asset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Criticality float64  `json:"criticality"`
}

// HasTag reports whether the asset carries the given tag.
func (a *Asset) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the asset carries at least one of the tags.
func (a *Asset) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if a.HasTag(t) {
			return true
		}
	}
	return false
}

// Store is an in-memory asset inventory loaded from a JSON document.
type Store struct {
	mu     sync.RWMutex
	assets map[string]*Asset
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{assets: make(map[string]*Asset)}
}

// assetDoc is the wire shape of an assets file. Pointer fields
// distinguish "absent" from zero so defaults can be applied.
type assetDoc struct {
	Assets []struct {
		ID          string       `json:"id"`
		Name        string       `json:"name"`
		Type        string       `json:"type"`
		Tags        []string     `json:"tags"`
		Criticality *jsonx.Float `json:"criticality"`
	} `json:"assets"`
}

// LoadFile reads a {"assets":[...]} document and adds every entry to the
// store. Missing ids are generated, missing names default to the id, and
// missing criticality defaults to DefaultCriticality.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read assets file: %w", err)
	}

	var doc assetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse assets file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, raw := range doc.Assets {
		a := &Asset{
			ID:          raw.ID,
			Name:        raw.Name,
			Type:        raw.Type,
			Tags:        raw.Tags,
			Criticality: raw.Criticality.Value(DefaultCriticality),
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		s.assets[a.ID] = a
	}
	return nil
}

// Add inserts a single asset, applying the same defaults as LoadFile.
func (s *Store) Add(a Asset) *Asset {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Name == "" {
		a.Name = a.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = &a
	return &a
}

// Get returns the asset with the given id.
func (s *Store) Get(id string) (*Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// IDs returns all asset ids in lexical order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of assets in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// All returns the assets ordered by id.
func (s *Store) All() []*Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Asset, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.assets[id])
	}
	return out
}
