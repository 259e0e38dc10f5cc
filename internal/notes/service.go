package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service owns the note lifecycle.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and stores a new note.
func (s *Service) Create(ctx context.Context, userID, documentID, title, content string, tags []string) (Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if userID == "" || documentID == "" || title == "" || content == "" {
		return Note{}, fmt.Errorf("%w: pdfId, title and content are required", ErrInvalidInput)
	}
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	note := Note{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
		Title:      title,
		Content:    content,
		Tags:       tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Get fetches one note scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, noteID string) (Note, error) {
	if userID == "" || noteID == "" {
		return Note{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, noteID)
}

// List returns the user's notes, optionally filtered by document.
func (s *Service) List(ctx context.Context, userID, documentID string) ([]Note, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, documentID)
}

// Update replaces a note's title, content and tags.
func (s *Service) Update(ctx context.Context, userID, noteID, title, content string, tags []string) (Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if userID == "" || noteID == "" || title == "" || content == "" {
		return Note{}, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	note, err := s.Repo.GetByID(ctx, userID, noteID)
	if err != nil {
		return Note{}, err
	}
	note.Title = title
	note.Content = content
	if tags != nil {
		note.Tags = tags
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Delete removes a note scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	if userID == "" || noteID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, noteID)
}
