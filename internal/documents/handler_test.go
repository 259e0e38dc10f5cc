package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdfhelper-backend/internal/answercache"
	"pdfhelper-backend/internal/documents"
	"pdfhelper-backend/internal/ingest"
	"pdfhelper-backend/internal/shared/storage/object/local"
)

type noopRasterizer struct{}

func (noopRasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]ingest.Page, error) {
	return []ingest.Page{{Page: 1, ImagePath: "p1.png"}}, nil
}

type noopCaptioner struct{}

func (noopCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	return "a page", nil
}

func newDocRouter(t *testing.T) (*gin.Engine, *documents.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &documents.Service{
		Store:      local.New(t.TempDir()),
		Repo:       documents.NewMemoryRepo(),
		Rasterizer: noopRasterizer{},
		Captioner:  noopCaptioner{},
		Cache:      answercache.NewMemory(nil),
	}

	router := gin.New()
	group := router.Group("/api/pdf", func(c *gin.Context) {
		c.Set("userId", "user-1")
	})
	documents.NewHandler(svc).RegisterRoutes(group)
	return router, svc
}

func TestDetailsRejectsMalformedID(t *testing.T) {
	router, _ := newDocRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/pdfs/not-a-uuid/details", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDetailsNotFound(t *testing.T) {
	router, _ := newDocRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/pdfs/"+uuid.NewString()+"/details", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListReturnsDashboardShape(t *testing.T) {
	router, svc := newDocRouter(t)

	docID := uuid.NewString()
	doc := documents.Document{
		ID:            docID,
		UserID:        "user-1",
		FileName:      "u/abc_report.pdf",
		OriginalName:  "report.pdf",
		SizeBytes:     1234,
		ExtractedText: "hello",
		Pages:         []documents.PageImage{{Page: 1, ImageKey: "u/abc_report.pdf.pages/page-1.png", Caption: "a page"}},
		PageCount:     1,
		CreatedAt:     time.Now().UTC(),
	}
	if err := svc.Repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/getpdfs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected one document, got %d", len(payload))
	}
	got := payload[0]
	if got["_id"] != docID {
		t.Fatalf("expected _id %q, got %v", docID, got["_id"])
	}
	if got["originalName"] != "report.pdf" {
		t.Fatalf("expected originalName, got %v", got["originalName"])
	}
	if got["filename"] != "u/abc_report.pdf" {
		t.Fatalf("expected filename, got %v", got["filename"])
	}
	images, ok := got["images"].([]any)
	if !ok || len(images) != 1 {
		t.Fatalf("expected one image, got %v", got["images"])
	}
}

func TestDeleteRemovesDocument(t *testing.T) {
	router, svc := newDocRouter(t)

	docID := uuid.NewString()
	doc := documents.Document{ID: docID, UserID: "user-1", CreatedAt: time.Now().UTC()}
	if err := svc.Repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/pdf/pdfs/"+docID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, "/api/pdf/pdfs/"+docID, nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", again.Code)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	router, _ := newDocRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadFailureHidesCause(t *testing.T) {
	router, _ := newDocRouter(t)

	// PDF magic bytes pass the mime check but the body is garbage, so the
	// pipeline fails after storage.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("pdf", "broken.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 this is not a real pdf body")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Message != "Failed to process PDF" {
		t.Fatalf("expected generic message, got %q", payload.Error.Message)
	}
	if payload.Error.Details != nil {
		t.Fatalf("expected no details in error body, got %v", payload.Error.Details)
	}
}
