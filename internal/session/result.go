// Package session drives the trace decoding pipeline: line grammar, address
// resolution, ISO-TP reassembly, UDS classification and ECU discovery, in a
// single ordered pass.
package session

import (
	"time"

	"github.com/optidiag/udstrace/internal/discovery"
	"github.com/optidiag/udstrace/internal/uds"
)

// ErrorCounts aggregates the recoverable error kinds observed during one
// parse. None of them abort the parse; callers surface them as parse-quality
// metrics.
type ErrorCounts struct {
	GrammarMismatch       int `json:"grammar_mismatch"`
	AddressLayoutMismatch int `json:"address_layout_mismatch"`
	ReassemblySequence    int `json:"reassembly_sequence"`
	IncompleteReassembly  int `json:"incomplete_reassembly"`
	UnknownService        int `json:"unknown_service"`
	UnknownPayloadShape   int `json:"unknown_payload_shape"`
}

// Total returns the sum over all error kinds.
func (e ErrorCounts) Total() int {
	return e.GrammarMismatch + e.AddressLayoutMismatch + e.ReassemblySequence +
		e.IncompleteReassembly + e.UnknownService + e.UnknownPayloadShape
}

// Metadata is session-level information gathered during the pass.
type Metadata struct {
	StartTimestamp string            `json:"start_timestamp"`
	EndTimestamp   string            `json:"end_timestamp"`
	Duration       string            `json:"duration,omitempty"`
	DurationMillis int64             `json:"duration_ms"`
	MessageCount   int               `json:"message_count"`
	TesterAddress  string            `json:"tester_address,omitempty"`
	Voltage        string            `json:"voltage,omitempty"`
	Facts          map[string]string `json:"facts,omitempty"`
	LinesTotal     int               `json:"lines_total"`
	LinesMatched   int               `json:"lines_matched"`
}

// Result is the sole artifact handed to external collaborators: the ordered
// message list, the discovered-ECU map, session metadata, and the error
// counters.
type Result struct {
	Messages []uds.Message                      `json:"messages"`
	ECUMap   map[string]*discovery.ECUKnowledge `json:"ecus"`
	Meta     Metadata                           `json:"meta"`
	Errors   ErrorCounts                        `json:"errors"`
}

// ECUs returns the aggregated knowledge map, for callers that only need the
// discovered facts.
func (r *Result) ECUs() map[string]*discovery.ECUKnowledge {
	return r.ECUMap
}

// timestampLayouts are tried in order when computing the session duration.
// Timestamps stay textual everywhere else.
var timestampLayouts = []string{"15:04:05.000", "15:04:05.00", "15:04:05.0", "15:04:05"}

func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
