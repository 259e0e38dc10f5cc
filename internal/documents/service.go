package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfhelper-backend/internal/answercache"
	"pdfhelper-backend/internal/ingest"
	"pdfhelper-backend/internal/shared/metrics"
	"pdfhelper-backend/internal/shared/storage/object"
	"pdfhelper-backend/internal/shared/telemetry"
)

const mimePDF = "application/pdf"

// Service runs the ingestion pipeline and owns the document lifecycle,
// including the file and cache cleanup that document deletion cascades into.
type Service struct {
	Store          object.Store
	Repo           Repo
	Rasterizer     ingest.Rasterizer
	Captioner      ingest.Captioner
	Cache          answercache.Cache
	CaptionWorkers int
}

// Ingest persists the upload and runs the full pipeline: text extraction,
// page rasterization, captioning, then a single document write. Any step
// failure aborts the upload; no partial document is ever persisted and
// generated files are cleaned up best-effort.
func (s *Service) Ingest(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	start := time.Now()
	defer func() { metrics.ObserveIngest(time.Since(start)) }()

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}
	pagesKey := storageKey + ".pages"

	cleanup := func() {
		if err := s.Store.Remove(context.Background(), storageKey); err != nil {
			telemetry.Error("ingest.cleanup", map[string]any{"key": storageKey, "error": err.Error()})
		}
		if err := s.Store.RemoveAll(context.Background(), pagesKey); err != nil {
			telemetry.Error("ingest.cleanup", map[string]any{"key": pagesKey, "error": err.Error()})
		}
	}

	if !strings.HasPrefix(mimeType, mimePDF) {
		cleanup()
		return Document{}, fmt.Errorf("%w: expected a PDF upload, got %s", ErrInvalidInput, mimeType)
	}

	data, err := s.readObject(ctx, storageKey)
	if err != nil {
		cleanup()
		return Document{}, fmt.Errorf("read upload: %w", err)
	}

	text, err := ingest.ExtractText(data)
	if err != nil {
		cleanup()
		return Document{}, fmt.Errorf("extract text: %w", err)
	}

	pdfPath, err := s.Store.Path(storageKey)
	if err != nil {
		cleanup()
		return Document{}, err
	}
	pagesDir, err := s.Store.Path(pagesKey)
	if err != nil {
		cleanup()
		return Document{}, err
	}

	pages, err := s.Rasterizer.Rasterize(ctx, pdfPath, pagesDir)
	if err != nil {
		cleanup()
		return Document{}, fmt.Errorf("rasterize pages: %w", err)
	}

	results := ingest.CaptionAll(ctx, s.Captioner, pages, s.CaptionWorkers)
	if failed := ingest.FailedPages(results); len(failed) > 0 {
		cleanup()
		return Document{}, fmt.Errorf("captioning failed for pages %v", failed)
	}

	pageImages := make([]PageImage, len(results))
	for i, res := range results {
		pageImages[i] = PageImage{
			Page:     res.Page.Page,
			ImageKey: filepath.Join(pagesKey, filepath.Base(res.Page.ImagePath)),
			Caption:  res.Caption,
		}
	}

	doc := Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      storageKey,
		OriginalName:  fileName,
		SizeBytes:     size,
		MimeType:      mimeType,
		ExtractedText: text,
		Pages:         pageImages,
		PageCount:     len(pageImages),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		cleanup()
		return Document{}, fmt.Errorf("persist document: %w", err)
	}

	return doc, nil
}

// Get fetches one document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents newest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a document, its stored files, and its cached answers.
// File and cache cleanup are best-effort; the record removal is not.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Remove(ctx, doc.FileName); err != nil {
		telemetry.Error("document.delete.file", map[string]any{"key": doc.FileName, "error": err.Error()})
	}
	if err := s.Store.RemoveAll(ctx, doc.FileName+".pages"); err != nil {
		telemetry.Error("document.delete.pages", map[string]any{"key": doc.FileName + ".pages", "error": err.Error()})
	}

	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}

	if s.Cache != nil {
		purged, err := s.Cache.DeleteByPrefix(ctx, answercache.Prefix(documentID))
		if err != nil {
			telemetry.Error("document.delete.cache", map[string]any{"document_id": documentID, "error": err.Error()})
		} else if purged > 0 {
			telemetry.Info("document.delete.cache", map[string]any{"document_id": documentID, "purged": purged})
		}
	}

	return nil
}

func (s *Service) readObject(ctx context.Context, key string) ([]byte, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
