package pagerank

import "fmt"

// FormatError reports a malformed PageRank line. Non-fatal: the caller
// logs it and falls back to Floor for that key.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pagerank: format error at line %d: %s", e.Line, e.Message)
}
