// Package llm provides the answer-generation providers behind
// domain.Generator.
package llm

import (
	"context"
	"errors"
	"strings"
)

// Transient reports whether a provider failure is worth retrying: rate
// limits, timeouts and server-side hiccups. Auth errors, bad requests and
// exhausted quotas are not.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "insufficient_quota"), strings.Contains(e, "quota"):
		return false
	case strings.Contains(e, "429"), strings.Contains(e, "rate"):
		return true
	case strings.Contains(e, "timeout"), strings.Contains(e, "timed out"):
		return true
	case strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"):
		return true
	case strings.Contains(e, "status 5"), strings.Contains(e, "502"), strings.Contains(e, "503"):
		return true
	default:
		return false
	}
}
