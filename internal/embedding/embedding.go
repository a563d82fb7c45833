// Package embedding provides the embedding providers behind
// domain.Embedder. Providers are interchangeable within one session as long
// as they produce the same dimension; the vector store enforces that.
package embedding

import "time"

// retryDelay is the exponential backoff between attempts against a remote
// provider, capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
