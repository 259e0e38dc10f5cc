package conversations

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a conversation does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("conversation not found")

// Repo is the persistence boundary for conversations.
type Repo interface {
	Create(ctx context.Context, conv Conversation) error
	GetByID(ctx context.Context, userID, conversationID string) (Conversation, error)
	// AppendMessages pushes messages onto an existing conversation and
	// bumps its updated_at.
	AppendMessages(ctx context.Context, userID, conversationID string, msgs ...Message) error
	// ListByDocument returns conversations with at least one message for
	// a document, newest-updated first, applying skip and limit.
	ListByDocument(ctx context.Context, userID, documentID string, skip, limit int) ([]Conversation, error)
	// CountByDocument counts conversations with at least one message.
	CountByDocument(ctx context.Context, userID, documentID string) (int64, error)
}
