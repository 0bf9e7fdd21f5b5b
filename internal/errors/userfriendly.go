package errors

import (
	"fmt"
	"os"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapTraceFileError wraps trace file read failures with user-friendly context
func WrapTraceFileError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read trace file %s", path),
		Reason:  extractFileReason(err),
		Hint:    "The trace must be the capture tool's text export, one diagnostic event per line",
		Try:     fmt.Sprintf("udstrace decode --input %s --verbose", path),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Decode options are YAML: sample_cap, local_tag, ecu_names",
		Try:     "udstrace decode --input trace.txt (defaults apply without --config)",
		Err:     err,
	}
}

// WrapReportError wraps report write failures with user-friendly context
func WrapReportError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to write report %s", path),
		Reason:  extractFileReason(err),
		Hint:    "Check that the output directory exists and is writable",
		Err:     err,
	}
}

func extractFileReason(err error) string {
	switch {
	case os.IsNotExist(err):
		return "File does not exist"
	case os.IsPermission(err):
		return "Permission denied"
	default:
		return err.Error()
	}
}
