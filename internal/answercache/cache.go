// Package answercache memoizes one-shot answers per (document, question).
// Chat answers are context-dependent and are never cached.
package answercache

import (
	"context"
	"fmt"
	"time"
)

// Cache maps answer keys to generated answers with a fixed expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// DeleteByPrefix purges every entry under the prefix and reports how
	// many were removed. No matching keys is not an error.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// Key builds the cache key for a (document, question) pair.
func Key(documentID, question string) string {
	return fmt.Sprintf("answer:%s:%s", documentID, question)
}

// Prefix builds the key prefix covering every cached answer of a document.
func Prefix(documentID string) string {
	return fmt.Sprintf("answer:%s:", documentID)
}
