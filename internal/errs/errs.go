// Package errs defines the error taxonomy shared across pipeline
// stages. Stage code wraps causes into one of these types so callers
// can distinguish tool failures from service outages and bad AI output
// with errors.As.
package errs

import (
	"fmt"
	"strings"
)

// ExternalToolError reports a failed child-process invocation: missing
// binary, non-zero exit, or wall-clock timeout.
type ExternalToolError struct {
	Tool   string
	Err    error
	Output string
}

func (e *ExternalToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Tool, e.Err, e.Output)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// NewToolError wraps a child-process failure, keeping a truncated tail
// of the combined output for diagnostics.
func NewToolError(tool string, err error, output []byte) *ExternalToolError {
	return &ExternalToolError{Tool: tool, Err: err, Output: tail(string(output), 2000)}
}

// ServiceError reports an unreachable or unusable remote backend
// (ranking or transcription service).
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string { return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err) }
func (e *ServiceError) Unwrap() error { return e.Err }

// ValidationError reports malformed producer output, such as an AI
// response without usable JSON or out-of-bounds timestamps.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ResourceError reports a filesystem failure at the artifact boundary.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *ResourceError) Unwrap() error { return e.Err }

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
