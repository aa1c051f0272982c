package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"aarogya-ai/internal/model"
)

func newTestHistoryCache(t *testing.T) (*HistoryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewHistoryCache(client, time.Minute, 5*time.Second), mr
}

func TestHistoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestHistoryCache(t)

	messages := []model.ChatMessage{
		{OwnerEmail: "a@x.com", UserQuery: "q1", AIResponse: "a1"},
		{OwnerEmail: "a@x.com", UserQuery: "q2", AIResponse: "a2"},
	}
	if err := cache.SetHistory(ctx, "a@x.com", messages); err != nil {
		t.Fatalf("set history: %v", err)
	}

	got, hit, err := cache.GetHistory(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !hit {
		t.Fatalf("expected cache hit")
	}
	if len(got) != 2 || got[0].UserQuery != "q1" || got[1].AIResponse != "a2" {
		t.Fatalf("unexpected cached messages: %v", got)
	}
}

func TestHistoryCacheMissForUnknownOwner(t *testing.T) {
	cache, _ := newTestHistoryCache(t)

	_, hit, err := cache.GetHistory(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if hit {
		t.Fatalf("expected miss for unknown owner")
	}
}

func TestHistoryCacheOwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestHistoryCache(t)

	if err := cache.SetHistory(ctx, "a@x.com", []model.ChatMessage{{UserQuery: "alice"}}); err != nil {
		t.Fatalf("set history: %v", err)
	}

	_, hit, err := cache.GetHistory(ctx, "b@x.com")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if hit {
		t.Fatalf("owner b must not see owner a's cache entry")
	}
}

func TestHistoryCacheDeleteAndDirty(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestHistoryCache(t)

	if err := cache.SetHistory(ctx, "a@x.com", []model.ChatMessage{{UserQuery: "q"}}); err != nil {
		t.Fatalf("set history: %v", err)
	}
	if err := cache.MarkDirty(ctx, "a@x.com"); err != nil {
		t.Fatalf("mark dirty: %v", err)
	}
	if err := cache.DeleteHistory(ctx, "a@x.com"); err != nil {
		t.Fatalf("delete history: %v", err)
	}

	if _, hit, _ := cache.GetHistory(ctx, "a@x.com"); hit {
		t.Fatalf("expected miss after delete")
	}
	dirty, err := cache.IsDirty(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("is dirty: %v", err)
	}
	if !dirty {
		t.Fatalf("expected dirty marker")
	}
}

func TestHistoryCacheDirtyMarkerExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestHistoryCache(t)

	if err := cache.MarkDirty(ctx, "a@x.com"); err != nil {
		t.Fatalf("mark dirty: %v", err)
	}
	mr.FastForward(6 * time.Second)

	dirty, err := cache.IsDirty(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("is dirty: %v", err)
	}
	if dirty {
		t.Fatalf("dirty marker should expire with its TTL")
	}
}
