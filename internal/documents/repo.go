package documents

import "context"

// Repo defines persistence operations for documents. Every read is scoped to
// the owning user.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
