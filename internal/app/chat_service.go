package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/rag"
)

const (
	// SummaryQueryLabel is saved as the user query for summarize turns in
	// place of the internal retrieval phrase.
	SummaryQueryLabel = "Request for Medical Record Summary"

	// NoReportsResponse is returned for summarize when nothing is indexed
	// for the caller; the generator is never invoked in that case.
	NoReportsResponse = "You don't have any medical reports uploaded yet. Upload a report and I can summarize it for you."

	historyLimit = 50
)

// ChunkRetriever fetches the caller's most relevant report chunks.
type ChunkRetriever interface {
	Retrieve(ctx context.Context, query, ownerEmail string, topK int) ([]string, error)
}

// ResponseGenerator produces presentable text for a prompt; it never fails.
type ResponseGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// ChatMessageStore persists and replays chat turns.
type ChatMessageStore interface {
	Create(message *model.ChatMessage) error
	ListByOwner(ownerEmail string, limit int) ([]model.ChatMessage, error)
}

// ChatHistoryCache shields the database from repeated history reads.
type ChatHistoryCache interface {
	GetHistory(ctx context.Context, ownerEmail string) ([]model.ChatMessage, bool, error)
	SetHistory(ctx context.Context, ownerEmail string, messages []model.ChatMessage) error
	DeleteHistory(ctx context.Context, ownerEmail string) error
	MarkDirty(ctx context.Context, ownerEmail string) error
	IsDirty(ctx context.Context, ownerEmail string) (bool, error)
}

type ChatService struct {
	messages      ChatMessageStore
	retriever     ChunkRetriever
	generator     ResponseGenerator
	historyCache  ChatHistoryCache
	askTopK       int
	summarizeTopK int
	logger        zerolog.Logger
}

type ChatInput struct {
	OwnerEmail string
	UserType   string
	Query      string
	Action     string
}

func NewChatService(
	messages ChatMessageStore,
	retriever ChunkRetriever,
	generator ResponseGenerator,
	historyCache ChatHistoryCache,
	askTopK int,
	summarizeTopK int,
	logger zerolog.Logger,
) *ChatService {
	if askTopK <= 0 {
		askTopK = 3
	}
	if summarizeTopK <= 0 {
		summarizeTopK = 10
	}
	return &ChatService{
		messages:      messages,
		retriever:     retriever,
		generator:     generator,
		historyCache:  historyCache,
		askTopK:       askTopK,
		summarizeTopK: summarizeTopK,
		logger:        logger,
	}
}

// Chat runs one turn: retrieve owner-scoped context, compose the prompt,
// generate, persist the exchange. Summarize is patient-only and is rejected
// before any retrieval or generation happens.
func (s *ChatService) Chat(ctx context.Context, input ChatInput) (*model.ChatMessage, error) {
	if input.OwnerEmail == "" {
		return nil, ErrInvalidInput
	}

	mode, err := rag.ParseMode(input.Action)
	if err != nil {
		return nil, ErrInvalidInput
	}

	query := strings.TrimSpace(input.Query)
	if mode == rag.ModeAsk && query == "" {
		return nil, ErrInvalidInput
	}
	if mode == rag.ModeSummarize && input.UserType != model.UserTypePatient {
		return nil, ErrForbidden
	}

	var response, savedQuery string
	switch mode {
	case rag.ModeSummarize:
		savedQuery = SummaryQueryLabel
		response = s.summarize(ctx, input.OwnerEmail)
	default:
		savedQuery = query
		response = s.ask(ctx, query, input.OwnerEmail)
	}

	message := &model.ChatMessage{
		OwnerEmail: input.OwnerEmail,
		UserQuery:  savedQuery,
		AIResponse: response,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, input.OwnerEmail)
		_ = s.historyCache.DeleteHistory(ctx, input.OwnerEmail)
	}
	return message, nil
}

func (s *ChatService) ask(ctx context.Context, query, ownerEmail string) string {
	chunks, err := s.retriever.Retrieve(ctx, query, ownerEmail, s.askTopK)
	if err != nil {
		// Degraded retrieval falls through to the no-context branch; the
		// user still gets a general answer.
		s.logger.Error().Err(err).Str("owner", ownerEmail).Msg("retrieval failed")
		chunks = nil
	}
	prompt := rag.BuildPrompt(rag.ModeAsk, chunks, query)
	return s.generator.Generate(ctx, prompt)
}

func (s *ChatService) summarize(ctx context.Context, ownerEmail string) string {
	chunks, err := s.retriever.Retrieve(ctx, rag.SummarizeRetrievalQuery, ownerEmail, s.summarizeTopK)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", ownerEmail).Msg("retrieval failed")
		return rag.FallbackResponse
	}
	if len(chunks) == 0 {
		return NoReportsResponse
	}
	prompt := rag.BuildPrompt(rag.ModeSummarize, chunks, "")
	return s.generator.Generate(ctx, prompt)
}

// History replays the caller's prior exchanges oldest-first, capped at 50,
// serving from the cache when it is populated and clean.
func (s *ChatService) History(ctx context.Context, ownerEmail string) ([]model.ChatMessage, error) {
	if ownerEmail == "" {
		return nil, ErrInvalidInput
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, ownerEmail)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, ownerEmail); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	messages, err := s.messages.ListByOwner(ownerEmail, historyLimit)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, ownerEmail); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, ownerEmail, messages)
		}
	}
	return messages, nil
}
