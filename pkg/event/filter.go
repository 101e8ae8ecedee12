package event

// Query selects a subset of events. Empty fields match everything.
type Query struct {
	Type  string
	Label string
	Asset string
}

// IsZero reports whether no criteria are set.
func (q Query) IsZero() bool {
	return q.Type == "" && q.Label == "" && q.Asset == ""
}

// Matches reports whether the event satisfies every set criterion.
func (q Query) Matches(e *Event) bool {
	if q.Type != "" && e.Type != q.Type {
		return false
	}
	if q.Label != "" && !e.HasLabel(q.Label) {
		return false
	}
	if q.Asset != "" && e.Asset != q.Asset {
		return false
	}
	return true
}

// Filter returns the events matching the query, preserving order.
// A zero query returns the input unchanged.
func Filter(events []Event, q Query) []Event {
	if q.IsZero() {
		return events
	}
	out := make([]Event, 0, len(events))
	for i := range events {
		if q.Matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}
