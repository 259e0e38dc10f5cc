package llm

import (
	"context"
	"errors"
)

// Client abstracts the hosted completion model.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNoCandidates is returned when the provider responds without any candidate.
var ErrNoCandidates = errors.New("no candidates in completion response")
