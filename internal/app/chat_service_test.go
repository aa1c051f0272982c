package app

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/rag"
)

type fakeRetriever struct {
	chunks    []string
	err       error
	calls     int
	lastQuery string
	lastOwner string
	lastTopK  int
}

func (f *fakeRetriever) Retrieve(_ context.Context, query, ownerEmail string, topK int) ([]string, error) {
	f.calls++
	f.lastQuery = query
	f.lastOwner = ownerEmail
	f.lastTopK = topK
	return f.chunks, f.err
}

type fakeGenerator struct {
	answer     string
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) string {
	f.calls++
	f.lastPrompt = prompt
	return f.answer
}

type fakeMessageStore struct {
	saved   []model.ChatMessage
	listErr error
}

func (f *fakeMessageStore) Create(message *model.ChatMessage) error {
	f.saved = append(f.saved, *message)
	return nil
}

func (f *fakeMessageStore) ListByOwner(ownerEmail string, limit int) ([]model.ChatMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.ChatMessage
	for _, m := range f.saved {
		if m.OwnerEmail == ownerEmail {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeHistoryCache struct {
	entries map[string][]model.ChatMessage
	dirty   map[string]bool
	hits    int
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{
		entries: map[string][]model.ChatMessage{},
		dirty:   map[string]bool{},
	}
}

func (f *fakeHistoryCache) GetHistory(_ context.Context, ownerEmail string) ([]model.ChatMessage, bool, error) {
	messages, ok := f.entries[ownerEmail]
	if ok {
		f.hits++
	}
	return messages, ok, nil
}

func (f *fakeHistoryCache) SetHistory(_ context.Context, ownerEmail string, messages []model.ChatMessage) error {
	f.entries[ownerEmail] = messages
	return nil
}

func (f *fakeHistoryCache) DeleteHistory(_ context.Context, ownerEmail string) error {
	delete(f.entries, ownerEmail)
	return nil
}

func (f *fakeHistoryCache) MarkDirty(_ context.Context, ownerEmail string) error {
	f.dirty[ownerEmail] = true
	return nil
}

func (f *fakeHistoryCache) IsDirty(_ context.Context, ownerEmail string) (bool, error) {
	return f.dirty[ownerEmail], nil
}

func newTestChatService(retriever *fakeRetriever, generator *fakeGenerator, store *fakeMessageStore, cache *fakeHistoryCache) *ChatService {
	return NewChatService(store, retriever, generator, cache, 3, 10, zerolog.Nop())
}

func TestChatRejectsUnknownAction(t *testing.T) {
	svc := newTestChatService(&fakeRetriever{}, &fakeGenerator{}, &fakeMessageStore{}, newFakeHistoryCache())

	_, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "hi",
		Action:     "delete",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestChatAskRequiresQuery(t *testing.T) {
	svc := newTestChatService(&fakeRetriever{}, &fakeGenerator{}, &fakeMessageStore{}, newFakeHistoryCache())

	_, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "   ",
		Action:     "ask",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank ask query, got %v", err)
	}
}

func TestChatSummarizeIsPatientOnly(t *testing.T) {
	retriever := &fakeRetriever{chunks: []string{"chunk"}}
	generator := &fakeGenerator{answer: "summary"}
	svc := newTestChatService(retriever, generator, &fakeMessageStore{}, newFakeHistoryCache())

	_, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "doc@x.com",
		UserType:   model.UserTypeDoctor,
		Action:     "summarize",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for doctor summarize, got %v", err)
	}
	if retriever.calls != 0 || generator.calls != 0 {
		t.Fatalf("rejection must happen before retrieval and generation")
	}
}

func TestChatSummarizeWithoutReports(t *testing.T) {
	retriever := &fakeRetriever{}
	generator := &fakeGenerator{answer: "must not appear"}
	store := &fakeMessageStore{}
	svc := newTestChatService(retriever, generator, store, newFakeHistoryCache())

	message, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Action:     "summarize",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if message.AIResponse != NoReportsResponse {
		t.Fatalf("expected no-reports response, got %q", message.AIResponse)
	}
	if generator.calls != 0 {
		t.Fatalf("generator must not run when nothing is indexed")
	}
	if message.UserQuery != SummaryQueryLabel {
		t.Fatalf("expected summary label saved as user query, got %q", message.UserQuery)
	}
	if len(store.saved) != 1 {
		t.Fatalf("turn was not persisted")
	}
}

func TestChatSummarizeUsesFixedRetrievalQuery(t *testing.T) {
	retriever := &fakeRetriever{chunks: []string{"finding one", "finding two"}}
	generator := &fakeGenerator{answer: "your summary"}
	svc := newTestChatService(retriever, generator, &fakeMessageStore{}, newFakeHistoryCache())

	message, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "ignored free text",
		Action:     "summarize",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if retriever.lastQuery != rag.SummarizeRetrievalQuery {
		t.Fatalf("summarize must use the fixed retrieval query, got %q", retriever.lastQuery)
	}
	if retriever.lastTopK != 10 {
		t.Fatalf("expected summarize topK 10, got %d", retriever.lastTopK)
	}
	if message.AIResponse != "your summary" {
		t.Fatalf("unexpected response %q", message.AIResponse)
	}
}

func TestChatAskPassesQueryVerbatim(t *testing.T) {
	retriever := &fakeRetriever{chunks: []string{"context"}}
	generator := &fakeGenerator{answer: "answer"}
	svc := newTestChatService(retriever, generator, &fakeMessageStore{}, newFakeHistoryCache())

	message, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "is my sugar high?",
		Action:     "ask",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if retriever.lastQuery != "is my sugar high?" {
		t.Fatalf("ask query rewritten: %q", retriever.lastQuery)
	}
	if retriever.lastOwner != "a@x.com" {
		t.Fatalf("retrieval not scoped to owner: %q", retriever.lastOwner)
	}
	if retriever.lastTopK != 3 {
		t.Fatalf("expected ask topK 3, got %d", retriever.lastTopK)
	}
	if message.UserQuery != "is my sugar high?" {
		t.Fatalf("saved query differs: %q", message.UserQuery)
	}
}

func TestChatAskSurvivesRetrievalFailure(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("vector store down")}
	generator := &fakeGenerator{answer: "general advice"}
	svc := newTestChatService(retriever, generator, &fakeMessageStore{}, newFakeHistoryCache())

	message, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "what is anemia?",
		Action:     "ask",
	})
	if err != nil {
		t.Fatalf("retrieval failure must not fail the turn: %v", err)
	}
	if generator.calls != 1 {
		t.Fatalf("generator should still run on degraded retrieval")
	}
	if message.AIResponse != "general advice" {
		t.Fatalf("unexpected response %q", message.AIResponse)
	}
}

func TestChatSummarizeRetrievalFailure(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("vector store down")}
	generator := &fakeGenerator{answer: "must not appear"}
	svc := newTestChatService(retriever, generator, &fakeMessageStore{}, newFakeHistoryCache())

	message, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Action:     "summarize",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if message.AIResponse != rag.FallbackResponse {
		t.Fatalf("expected fallback on summarize retrieval failure, got %q", message.AIResponse)
	}
	if generator.calls != 0 {
		t.Fatalf("generator must not run when summarize retrieval fails")
	}
}

func TestChatInvalidatesHistoryCache(t *testing.T) {
	cache := newFakeHistoryCache()
	cache.entries["a@x.com"] = []model.ChatMessage{{UserQuery: "stale"}}
	retriever := &fakeRetriever{chunks: []string{"c"}}
	svc := newTestChatService(retriever, &fakeGenerator{answer: "a"}, &fakeMessageStore{}, cache)

	if _, err := svc.Chat(context.Background(), ChatInput{
		OwnerEmail: "a@x.com",
		UserType:   model.UserTypePatient,
		Query:      "q",
		Action:     "ask",
	}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if _, ok := cache.entries["a@x.com"]; ok {
		t.Fatalf("stale history entry not evicted")
	}
	if !cache.dirty["a@x.com"] {
		t.Fatalf("dirty marker not set after write")
	}
}

func TestHistoryServesFromCacheWhenClean(t *testing.T) {
	cache := newFakeHistoryCache()
	cached := []model.ChatMessage{{OwnerEmail: "a@x.com", UserQuery: "q", AIResponse: "a"}}
	cache.entries["a@x.com"] = cached
	store := &fakeMessageStore{listErr: errors.New("db must not be hit")}
	svc := newTestChatService(&fakeRetriever{}, &fakeGenerator{}, store, cache)

	messages, err := svc.History(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(messages) != 1 || messages[0].UserQuery != "q" {
		t.Fatalf("unexpected cached history: %v", messages)
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit, got %d", cache.hits)
	}
}

func TestHistoryFallsBackToStoreWhenDirty(t *testing.T) {
	cache := newFakeHistoryCache()
	cache.dirty["a@x.com"] = true
	store := &fakeMessageStore{saved: []model.ChatMessage{
		{OwnerEmail: "a@x.com", UserQuery: "first"},
		{OwnerEmail: "b@x.com", UserQuery: "other owner"},
	}}
	svc := newTestChatService(&fakeRetriever{}, &fakeGenerator{}, store, cache)

	messages, err := svc.History(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(messages) != 1 || messages[0].UserQuery != "first" {
		t.Fatalf("expected only owner's rows from store, got %v", messages)
	}
}
