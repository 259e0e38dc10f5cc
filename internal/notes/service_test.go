package notes

import (
	"context"
	"errors"
	"testing"
)

func TestCreateRequiresFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "", "title", "content", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing pdfId, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", "doc-1", "  ", "content", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", "doc-1", "title", "", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty content, got %v", err)
	}
}

func TestCreateDefaultsTags(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	note, err := svc.Create(context.Background(), "user-1", "doc-1", "title", "content", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if note.ID == "" {
		t.Fatalf("expected generated id")
	}
	if note.Tags == nil || len(note.Tags) != 0 {
		t.Fatalf("expected empty tag slice, got %v", note.Tags)
	}
	if note.CreatedAt.IsZero() || !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", note.CreatedAt, note.UpdatedAt)
	}
}

func TestListFiltersByDocument(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "user-1", "doc-1", "first", "content", nil)
	_, _ = svc.Create(ctx, "user-1", "doc-2", "second", "content", nil)
	_, _ = svc.Create(ctx, "user-2", "doc-1", "other", "content", nil)

	all, err := svc.List(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(all))
	}

	filtered, err := svc.List(ctx, "user-1", "doc-1")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "first" {
		t.Fatalf("expected only doc-1 note, got %+v", filtered)
	}
}

func TestUpdateScopedToOwner(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	note, err := svc.Create(ctx, "user-1", "doc-1", "title", "content", []string{"tag"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(ctx, "user-2", note.ID, "new title", "new content", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	updated, err := svc.Update(ctx, "user-1", note.ID, "new title", "new content", nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "new title" || updated.Content != "new content" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "tag" {
		t.Fatalf("expected tags preserved when omitted, got %v", updated.Tags)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	note, err := svc.Create(ctx, "user-1", "doc-1", "title", "content", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, "user-2", note.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", note.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", note.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected note gone, got %v", err)
	}
}
