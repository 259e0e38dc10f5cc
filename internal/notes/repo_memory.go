package notes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Note // noteID -> note
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Note)}
}

// Create stores a note.
func (r *MemoryRepo) Create(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[note.ID] = note
	return nil
}

// GetByID fetches a note scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, noteID string) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.data[noteID]
	if !ok || note.UserID != userID {
		return Note{}, ErrNotFound
	}
	return note, nil
}

// ListByUser returns the user's notes newest-updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID, documentID string) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var all []Note
	for _, note := range r.data {
		if note.UserID != userID {
			continue
		}
		if documentID != "" && note.DocumentID != documentID {
			continue
		}
		all = append(all, note)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	return all, nil
}

// Update replaces a note scoped to its owner.
func (r *MemoryRepo) Update(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[note.ID]
	if !ok || existing.UserID != note.UserID {
		return ErrNotFound
	}
	existing.Title = note.Title
	existing.Content = note.Content
	existing.Tags = note.Tags
	existing.UpdatedAt = note.UpdatedAt
	r.data[note.ID] = existing
	return nil
}

// Delete removes a note scoped to its owner.
func (r *MemoryRepo) Delete(ctx context.Context, userID, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.data[noteID]
	if !ok || note.UserID != userID {
		return ErrNotFound
	}
	delete(r.data, noteID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
