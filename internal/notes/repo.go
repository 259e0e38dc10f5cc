package notes

import "context"

// Repo is the persistence boundary for notes. Every read and write is
// scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, note Note) error
	GetByID(ctx context.Context, userID, noteID string) (Note, error)
	// ListByUser returns the user's notes newest-updated first, optionally
	// filtered by document.
	ListByUser(ctx context.Context, userID, documentID string) ([]Note, error)
	Update(ctx context.Context, note Note) error
	Delete(ctx context.Context, userID, noteID string) error
}
