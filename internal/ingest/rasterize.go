package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"pdfhelper-backend/internal/shared/metrics"
)

// Page is one rasterized page of a document.
type Page struct {
	Page      int    `json:"page"`
	ImagePath string `json:"imagePath"`
}

// Rasterizer turns a PDF on disk into one image per page.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]Page, error)
}

// ExecRasterizer shells out to an external converter that writes page images
// into outDir and prints a JSON array of {page, imagePath} on stdout.
type ExecRasterizer struct {
	// Command is the converter invocation; the PDF path and output
	// directory are appended as the final two arguments.
	Command []string
}

// Rasterize runs the converter and parses its output. Any non-zero exit,
// unparsable output, or gap in the page sequence fails the whole call.
func (r *ExecRasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]Page, error) {
	if len(r.Command) == 0 {
		return nil, fmt.Errorf("rasterizer command not configured")
	}

	args := append(append([]string{}, r.Command[1:]...), pdfPath, outDir)
	cmd := exec.CommandContext(ctx, r.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.ObserveDependency("rasterizer", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w: %s", pdfPath, err, stderr.String())
	}

	var pages []Page
	if err := json.Unmarshal(stdout.Bytes(), &pages); err != nil {
		return nil, fmt.Errorf("rasterize %s: parse converter output: %w", pdfPath, err)
	}

	if err := ValidatePageSequence(pages); err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", pdfPath, err)
	}
	return pages, nil
}

// ValidatePageSequence checks that page numbers form a contiguous 1..N run.
func ValidatePageSequence(pages []Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("converter produced no pages")
	}
	sorted := make([]Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Page < sorted[j].Page })
	for i, p := range sorted {
		if p.Page != i+1 {
			return fmt.Errorf("non-contiguous page sequence: expected page %d, got %d", i+1, p.Page)
		}
		if p.ImagePath == "" {
			return fmt.Errorf("page %d has no image path", p.Page)
		}
	}
	copy(pages, sorted)
	return nil
}
