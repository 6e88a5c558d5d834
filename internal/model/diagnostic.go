package model

import "fmt"

// DiagnosticKind names a recoverable problem found during extraction.
type DiagnosticKind string

const (
	DiagHeaderNotFound DiagnosticKind = "header-not-found"
	DiagMultipleValues DiagnosticKind = "multiple-values-on-row"
	DiagTotalsMiss     DiagnosticKind = "totals-miss"
)

// Diagnostic is a soft extraction problem. Page is 0-based, -1 when not page specific.
type Diagnostic struct {
	Kind   DiagnosticKind
	Page   int
	Detail string
}

func (d Diagnostic) String() string {
	if d.Page < 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("%s [page %d]: %s", d.Kind, d.Page+1, d.Detail)
}
