package dataset

import (
	"fmt"
	"strings"
)

// FetchError reports a failed request for the dataset resource
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HeaderError reports required columns missing from the header row
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return "missing columns: " + strings.Join(e.Missing, ", ")
}

// RowIssue describes one offending cell in the dataset
type RowIssue struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("line %d, column %s: %s (value %q)", i.Line, i.Column, i.Reason, i.Value)
}

// ParseError enumerates every row that failed schema validation
type ParseError struct {
	Issues []RowIssue
}

func (e *ParseError) Error() string {
	const shown = 5

	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid cells", len(e.Issues))
	for i, issue := range e.Issues {
		if i == shown {
			fmt.Fprintf(&b, "; and %d more", len(e.Issues)-shown)
			break
		}
		b.WriteString("; ")
		b.WriteString(issue.String())
	}
	return b.String()
}
