package conversations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Conversation // conversationID -> conversation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Conversation)}
}

// Create stores a conversation.
func (r *MemoryRepo) Create(ctx context.Context, conv Conversation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[conv.ID] = conv
	return nil
}

// GetByID fetches a conversation scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, conversationID string) (Conversation, error) {
	if err := ctx.Err(); err != nil {
		return Conversation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.data[conversationID]
	if !ok || conv.UserID != userID {
		return Conversation{}, ErrNotFound
	}
	return cloneConversation(conv), nil
}

// AppendMessages pushes messages and bumps updated_at.
func (r *MemoryRepo) AppendMessages(ctx context.Context, userID, conversationID string, msgs ...Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.data[conversationID]
	if !ok || conv.UserID != userID {
		return ErrNotFound
	}
	conv.Messages = append(conv.Messages, msgs...)
	conv.UpdatedAt = time.Now().UTC()
	r.data[conversationID] = conv
	return nil
}

// ListByDocument pages conversations newest-updated first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, userID, documentID string, skip, limit int) ([]Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var convs []Conversation
	for _, conv := range r.data {
		if conv.UserID == userID && conv.DocumentID == documentID && len(conv.Messages) > 0 {
			convs = append(convs, cloneConversation(conv))
		}
	}
	r.mu.RUnlock()

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})

	if skip >= len(convs) {
		return nil, nil
	}
	convs = convs[skip:]
	if limit > 0 && limit < len(convs) {
		convs = convs[:limit]
	}
	return convs, nil
}

// CountByDocument counts a document's conversations that have messages.
func (r *MemoryRepo) CountByDocument(ctx context.Context, userID, documentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, conv := range r.data {
		if conv.UserID == userID && conv.DocumentID == documentID && len(conv.Messages) > 0 {
			n++
		}
	}
	return n, nil
}

func cloneConversation(conv Conversation) Conversation {
	msgs := make([]Message, len(conv.Messages))
	copy(msgs, conv.Messages)
	conv.Messages = msgs
	return conv
}

var _ Repo = (*MemoryRepo)(nil)
