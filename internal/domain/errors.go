package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by Ask before any document has been ingested.
	ErrNotReady = errors.New("no documents ingested yet")

	// ErrEmbedding wraps embedding-provider failures.
	ErrEmbedding = errors.New("embedding provider error")

	// ErrGeneration wraps language-model failures.
	ErrGeneration = errors.New("generation provider error")
)

// ParseError reports an unreadable or unsupported document. It fails only
// the named file, never its siblings in the same batch.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DimensionError reports a vector whose dimension disagrees with the one
// the index was built with. This is a configuration error (usually a
// provider swap mid-session) and fails the affected items without touching
// what is already indexed.
type DimensionError struct {
	Source string
	Got    int
	Want   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch for %s: got %d, index has %d", e.Source, e.Got, e.Want)
}
