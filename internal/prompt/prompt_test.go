package prompt

import (
	"fmt"
	"strings"
	"testing"
)

func TestImageSummarySkipsEmptyDescriptions(t *testing.T) {
	captions := []Caption{
		{Page: 1, Description: "a bar chart"},
		{Page: 2, Description: "   "},
		{Page: 3, Description: "a diagram"},
	}

	got := ImageSummary(captions)

	if strings.Contains(got, "page 2") {
		t.Fatalf("expected page 2 to be skipped, got %q", got)
	}
	if !strings.Contains(got, "Image 1 (page 1): a bar chart") {
		t.Fatalf("missing first caption line in %q", got)
	}
	if !strings.Contains(got, "Image 3 (page 3): a diagram") {
		t.Fatalf("missing third caption line in %q", got)
	}
}

func TestImageSummaryPlaceholderWhenEmpty(t *testing.T) {
	if got := ImageSummary(nil); got != noCaptionsPlaceholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := ImageSummary([]Caption{{Page: 1, Description: ""}}); got != noCaptionsPlaceholder {
		t.Fatalf("expected placeholder for empty descriptions, got %q", got)
	}
}

func TestAskUsesPlaceholdersAndQuestion(t *testing.T) {
	got := Ask("", nil, "What is this about?")

	if !strings.Contains(got, noTextPlaceholder) {
		t.Fatalf("expected text placeholder in prompt")
	}
	if !strings.Contains(got, noCaptionsPlaceholder) {
		t.Fatalf("expected captions placeholder in prompt")
	}
	if !strings.Contains(got, "What is this about?") {
		t.Fatalf("expected question in prompt")
	}
}

func TestChatTruncatesHistory(t *testing.T) {
	var history []Turn
	for i := 1; i <= 8; i++ {
		history = append(history, Turn{Role: "user", Content: fmt.Sprintf("turn-%d", i)})
	}

	got := Chat("some text", nil, history, "latest question")

	for i := 1; i <= 3; i++ {
		if strings.Contains(got, fmt.Sprintf("turn-%d", i)) {
			t.Fatalf("expected turn-%d to be truncated out", i)
		}
	}
	for i := 4; i <= 8; i++ {
		if !strings.Contains(got, fmt.Sprintf("turn-%d", i)) {
			t.Fatalf("expected turn-%d to be kept", i)
		}
	}
	if !strings.Contains(got, "latest question") {
		t.Fatalf("expected latest question in prompt")
	}
}

func TestNotesIncludesTitleAndContext(t *testing.T) {
	got := Notes("report.pdf", "body text", []Caption{{Page: 1, Description: "a table"}}, "user: summarize this")

	if !strings.Contains(got, "Title: report.pdf") {
		t.Fatalf("expected title in prompt")
	}
	if !strings.Contains(got, "body text") {
		t.Fatalf("expected document text in prompt")
	}
	if !strings.Contains(got, "a table") {
		t.Fatalf("expected caption in prompt")
	}
	if !strings.Contains(got, "user: summarize this") {
		t.Fatalf("expected conversation context in prompt")
	}
}
