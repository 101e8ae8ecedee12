// Package event defines security events and their file-backed store.
package event

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riskplane/riskplane-core/internal/jsonx"
)

// DefaultSeverity is assumed for events that do not declare one.
const DefaultSeverity = 0.5

// Event is a single observation attributed to an asset: an alert, an
// anomaly, an incident.
type Event struct {
	ID       string         `json:"id"`
	TS       int64          `json:"ts"`
	Asset    string         `json:"asset"`
	Type     string         `json:"type,omitempty"`
	Severity float64        `json:"severity"`
	Labels   []string       `json:"labels,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// HasLabel reports whether the event carries the given label.
func (e *Event) HasLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HasAnyLabel reports whether the event carries at least one of the labels.
func (e *Event) HasAnyLabel(labels []string) bool {
	for _, l := range labels {
		if e.HasLabel(l) {
			return true
		}
	}
	return false
}

// Store is an in-memory event collection loaded from a JSON document.
// Events keep their file order.
type Store struct {
	mu     sync.RWMutex
	events []Event
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

type eventDoc struct {
	Events []struct {
		ID       string         `json:"id"`
		TS       *int64         `json:"ts"`
		Asset    string         `json:"asset"`
		Type     string         `json:"type"`
		Severity *jsonx.Float   `json:"severity"`
		Labels   []string       `json:"labels"`
		Data     map[string]any `json:"data"`
	} `json:"events"`
}

// LoadFile reads a {"events":[...]} document and appends every entry.
// Missing ids are generated, missing timestamps default to now, and
// missing severity defaults to DefaultSeverity.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read events file: %w", err)
	}

	var doc eventDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse events file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, raw := range doc.Events {
		e := Event{
			ID:       raw.ID,
			Asset:    raw.Asset,
			Type:     raw.Type,
			Severity: raw.Severity.Value(DefaultSeverity),
			Labels:   raw.Labels,
			Data:     raw.Data,
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if raw.TS != nil {
			e.TS = *raw.TS
		} else {
			e.TS = time.Now().Unix()
		}
		s.events = append(s.events, e)
	}
	return nil
}

// Add appends a single event, applying the same defaults as LoadFile.
func (s *Store) Add(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.TS == 0 {
		e.TS = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return e
}

// All returns a copy of the events in load order.
func (s *Store) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of events in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
