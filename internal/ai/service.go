package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfhelper-backend/internal/answercache"
	"pdfhelper-backend/internal/conversations"
	"pdfhelper-backend/internal/documents"
	"pdfhelper-backend/internal/llm"
	"pdfhelper-backend/internal/notes"
	"pdfhelper-backend/internal/prompt"
	"pdfhelper-backend/internal/shared/metrics"
	"pdfhelper-backend/internal/shared/telemetry"
)

var (
	// ErrInvalidInput marks a rejected request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDocumentNotFound is returned when the referenced document does
	// not exist or belongs to another user.
	ErrDocumentNotFound = errors.New("document not found")
)

const (
	defaultHistoryLimit = 20
	historyContextConvs = 5
	historyContextMsgs  = 10
)

// Service answers questions about documents, maintains chat history and
// generates study notes. Answers to the stateless ask endpoint are cached
// per document and question.
type Service struct {
	Docs      documents.Repo
	Convs     conversations.Repo
	Notes     *notes.Service
	Cache     answercache.Cache
	LLM       llm.Client
	AnswerTTL time.Duration
}

// AskResult carries an answer and whether it was served from cache.
type AskResult struct {
	Answer string
	Cached bool
}

// Ask answers a one-shot question about a document. Cache is consulted
// first; on a miss the completion is stored under the document and exact
// question text. Either way the exchange is recorded as a conversation.
func (s *Service) Ask(ctx context.Context, userID, documentID, question string) (AskResult, error) {
	if question == "" {
		return AskResult{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return AskResult{}, fmt.Errorf("%w: invalid PDF ID format", ErrInvalidInput)
	}

	key := answercache.Key(documentID, question)
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			telemetry.Error("ai.ask.cache", map[string]any{"error": err.Error()})
		} else if ok {
			metrics.CacheHit()
			return AskResult{Answer: cached, Cached: true}, nil
		} else {
			metrics.CacheMiss()
		}
	}

	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return AskResult{}, ErrDocumentNotFound
		}
		return AskResult{}, err
	}

	answer, err := s.LLM.Complete(ctx, prompt.Ask(doc.ExtractedText, captionsOf(doc), question))
	if err != nil {
		return AskResult{}, fmt.Errorf("completion: %w", err)
	}

	now := time.Now().UTC()
	conv := conversations.Conversation{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
		Messages: []conversations.Message{
			{Role: conversations.RoleUser, Content: question, Timestamp: now},
			{Role: conversations.RoleAssistant, Content: answer, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Convs.Create(ctx, conv); err != nil {
		telemetry.Error("ai.ask.persist", map[string]any{"error": err.Error()})
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, answer, s.AnswerTTL); err != nil {
			telemetry.Error("ai.ask.cache", map[string]any{"error": err.Error()})
		}
	}

	return AskResult{Answer: answer}, nil
}

// ChatResult carries the assistant reply and the conversation it landed in.
type ChatResult struct {
	Response       string
	ConversationID string
}

// Chat continues (or starts) a conversation about a document. The prompt
// carries the last turns of the conversation including the message just
// sent. Chat responses are never cached.
func (s *Service) Chat(ctx context.Context, userID, documentID, conversationID, message string) (ChatResult, error) {
	if message == "" {
		return ChatResult{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return ChatResult{}, fmt.Errorf("%w: invalid PDF ID format", ErrInvalidInput)
	}

	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return ChatResult{}, ErrDocumentNotFound
		}
		return ChatResult{}, err
	}

	now := time.Now().UTC()
	userMsg := conversations.Message{Role: conversations.RoleUser, Content: message, Timestamp: now}

	var conv conversations.Conversation
	if conversationID != "" {
		conv, err = s.Convs.GetByID(ctx, userID, conversationID)
		if err != nil {
			return ChatResult{}, err
		}
		if conv.DocumentID != documentID {
			return ChatResult{}, conversations.ErrNotFound
		}
		if err := s.Convs.AppendMessages(ctx, userID, conv.ID, userMsg); err != nil {
			return ChatResult{}, err
		}
		conv.Messages = append(conv.Messages, userMsg)
	} else {
		conv = conversations.Conversation{
			ID:         uuid.NewString(),
			UserID:     userID,
			DocumentID: documentID,
			Messages:   []conversations.Message{userMsg},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.Convs.Create(ctx, conv); err != nil {
			return ChatResult{}, err
		}
	}

	history := make([]prompt.Turn, len(conv.Messages))
	for i, msg := range conv.Messages {
		history[i] = prompt.Turn{Role: msg.Role, Content: msg.Content}
	}

	answer, err := s.LLM.Complete(ctx, prompt.Chat(doc.ExtractedText, captionsOf(doc), history, message))
	if err != nil {
		return ChatResult{}, fmt.Errorf("completion: %w", err)
	}

	assistantMsg := conversations.Message{Role: conversations.RoleAssistant, Content: answer, Timestamp: time.Now().UTC()}
	if err := s.Convs.AppendMessages(ctx, userID, conv.ID, assistantMsg); err != nil {
		telemetry.Error("ai.chat.persist", map[string]any{"error": err.Error()})
	}

	return ChatResult{Response: answer, ConversationID: conv.ID}, nil
}

// HistoryMessage is a flattened chat turn with its conversation of origin.
type HistoryMessage struct {
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	ConversationID string    `json:"conversationId"`
}

// HistoryResult is one page of a document's flattened chat history.
type HistoryResult struct {
	Messages []HistoryMessage `json:"messages"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"totalConversations"`
	HasMore  bool             `json:"hasMore"`
}

// History pages a document's chat turns newest-first. Pagination walks
// conversations, not messages, so a page may carry more messages than
// limit; hasMore is judged against the conversation count.
func (s *Service) History(ctx context.Context, userID, documentID string, page, limit int) (HistoryResult, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return HistoryResult{}, fmt.Errorf("%w: invalid PDF ID format", ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}

	if _, err := s.Docs.GetByID(ctx, userID, documentID); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return HistoryResult{}, ErrDocumentNotFound
		}
		return HistoryResult{}, err
	}

	convs, err := s.Convs.ListByDocument(ctx, userID, documentID, (page-1)*limit, limit)
	if err != nil {
		return HistoryResult{}, err
	}
	total, err := s.Convs.CountByDocument(ctx, userID, documentID)
	if err != nil {
		return HistoryResult{}, err
	}

	messages := make([]HistoryMessage, 0)
	for _, conv := range convs {
		for _, msg := range conv.Messages {
			messages = append(messages, HistoryMessage{
				Role:           msg.Role,
				Content:        msg.Content,
				Timestamp:      msg.Timestamp,
				ConversationID: conv.ID,
			})
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})

	return HistoryResult{
		Messages: messages,
		Page:     page,
		Limit:    limit,
		Total:    total,
		HasMore:  int64(page*limit) < total,
	}, nil
}

// GenerateNotes asks the model for structured study notes over the
// document and its recent conversations, then stores the result.
func (s *Service) GenerateNotes(ctx context.Context, userID, documentID string) (notes.Note, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return notes.Note{}, fmt.Errorf("%w: invalid PDF ID format", ErrInvalidInput)
	}

	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return notes.Note{}, ErrDocumentNotFound
		}
		return notes.Note{}, err
	}

	convs, err := s.Convs.ListByDocument(ctx, userID, documentID, 0, historyContextConvs)
	if err != nil {
		return notes.Note{}, err
	}

	var contextLines []string
	for _, conv := range convs {
		msgs := conv.Messages
		if len(msgs) > historyContextMsgs {
			msgs = msgs[len(msgs)-historyContextMsgs:]
		}
		for _, msg := range msgs {
			contextLines = append(contextLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
		}
	}

	content, err := s.LLM.Complete(ctx, prompt.Notes(doc.OriginalName, doc.ExtractedText, captionsOf(doc), strings.Join(contextLines, "\n")))
	if err != nil {
		return notes.Note{}, fmt.Errorf("completion: %w", err)
	}

	title := "Notes: " + doc.OriginalName
	return s.Notes.Create(ctx, userID, documentID, title, content, []string{"auto-generated", "ai-notes"})
}

func captionsOf(doc documents.Document) []prompt.Caption {
	captions := make([]prompt.Caption, len(doc.Pages))
	for i, page := range doc.Pages {
		captions[i] = prompt.Caption{Page: page.Page, Description: page.Caption}
	}
	return captions
}
