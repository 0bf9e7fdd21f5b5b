// Package discovery aggregates per-ECU knowledge discovered while decoding a
// diagnostic session.
package discovery

import "encoding/json"

// SampleRing retains a bounded rolling window of observed values. Memory use
// is fixed regardless of trace length; once full, the oldest value is
// overwritten.
type SampleRing struct {
	values []string
	next   int
	full   bool
}

// NewSampleRing returns a ring holding at most capacity values. Capacity
// below 1 is clamped to 1.
func NewSampleRing(capacity int) *SampleRing {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleRing{values: make([]string, capacity)}
}

// Add appends a value, evicting the oldest when the ring is full.
func (r *SampleRing) Add(v string) {
	r.values[r.next] = v
	r.next++
	if r.next == len(r.values) {
		r.next = 0
		r.full = true
	}
}

// Len returns the number of retained values.
func (r *SampleRing) Len() int {
	if r.full {
		return len(r.values)
	}
	return r.next
}

// Values returns the retained values oldest first.
func (r *SampleRing) Values() []string {
	if !r.full {
		return append([]string(nil), r.values[:r.next]...)
	}
	out := make([]string, 0, len(r.values))
	out = append(out, r.values[r.next:]...)
	out = append(out, r.values[:r.next]...)
	return out
}

// MarshalJSON renders the ring as its ordered value list.
func (r *SampleRing) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}
