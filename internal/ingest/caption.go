package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
	"golang.org/x/sync/errgroup"

	"pdfhelper-backend/internal/shared/metrics"
)

// Captioner produces a natural-language description of one page image.
type Captioner interface {
	Caption(ctx context.Context, imagePath string) (string, error)
}

// CaptionResult pairs a page with its caption or its failure.
type CaptionResult struct {
	Page    Page
	Caption string
	Err     error
}

const defaultCaptionWorkers = 4

// CaptionAll captions every page through a bounded worker pool. Failures are
// isolated per image; results come back in page order. The caller decides
// what an individual failure means for the batch.
func CaptionAll(ctx context.Context, captioner Captioner, pages []Page, workers int) []CaptionResult {
	if workers <= 0 {
		workers = defaultCaptionWorkers
	}

	results := make([]CaptionResult, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			caption, err := captioner.Caption(ctx, page.ImagePath)
			if err != nil {
				metrics.CaptionFailure()
			}
			results[i] = CaptionResult{Page: page, Caption: strings.TrimSpace(caption), Err: err}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Page.Page < results[j].Page.Page })
	return results
}

// FailedPages collects the page numbers of failed caption results.
func FailedPages(results []CaptionResult) []int {
	var failed []int
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Page.Page)
		}
	}
	return failed
}

const visionSystemPrompt = "You are an expert visual analyst. Always provide rich, thorough, and structured descriptions of images when asked."

const visionUserPrompt = `Describe the image in great detail.
Include layout, visible elements (like text, charts, tables, diagrams), positions, styles, colors, and any inferred purpose or meaning.
If text is present, summarize its content. Be exhaustive.`

// OllamaCaptioner captions images with a local vision model served by Ollama.
type OllamaCaptioner struct {
	client *ollama.Client
	model  string
}

// NewOllamaCaptioner builds a captioner against the given Ollama host.
func NewOllamaCaptioner(host, model string) (*OllamaCaptioner, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &OllamaCaptioner{client: ollama.NewClient(u, httpClient), model: model}, nil
}

// Caption sends the image to the vision model and gathers the streamed reply.
func (o *OllamaCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", imagePath, err)
	}

	req := &ollama.GenerateRequest{
		Model:  o.model,
		System: visionSystemPrompt,
		Prompt: visionUserPrompt,
		Images: []ollama.ImageData{data},
	}

	var text strings.Builder
	start := time.Now()
	err = o.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	})
	metrics.ObserveDependency("captioner", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("caption %s: %w", imagePath, err)
	}

	caption := strings.TrimSpace(text.String())
	if caption == "" {
		return "", errors.New("vision model returned an empty description")
	}
	return caption, nil
}

var _ Captioner = (*OllamaCaptioner)(nil)
