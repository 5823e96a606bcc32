// Package timeout defines centralized timeout constants for NLU and catalog
// operations.
package timeout

import "time"

const (
	// SearchTimeout bounds one tool-search request end to end: intent
	// analysis, catalog listing, ranking and alias enrichment.
	SearchTimeout = 5 * time.Second

	// EmbeddingTimeout bounds a single embedding generation call.
	EmbeddingTimeout = 30 * time.Second

	// EmbedBatchTimeout bounds a full catalog re-embedding run.
	EmbedBatchTimeout = 2 * time.Minute

	// EmbedConcurrency caps in-flight embedding calls during a batch run.
	EmbedConcurrency = 3

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)

// Truncate shortens s for log output.
func Truncate(s string) string {
	if len(s) <= MaxTruncateLength {
		return s
	}
	return s[:MaxTruncateLength] + "..."
}
