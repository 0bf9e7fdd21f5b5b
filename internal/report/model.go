// Package report renders decoded session results for humans and machines.
package report

import (
	"github.com/optidiag/udstrace/internal/session"
)

// SessionReport is the machine-readable report envelope written by the
// decode command.
type SessionReport struct {
	GeneratedAt     string          `json:"generated_at"`
	UDSTraceVersion string          `json:"udstrace_version"`
	TraceFile       string          `json:"trace_file"`
	Result          *session.Result `json:"result"`
}

// NewSessionReport wraps a parse result with provenance fields.
func NewSessionReport(version, traceFile string, result *session.Result) SessionReport {
	return SessionReport{
		GeneratedAt:     FormatTimestamp(),
		UDSTraceVersion: version,
		TraceFile:       traceFile,
		Result:          result,
	}
}
