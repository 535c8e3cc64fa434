package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tripkit/internal/modules/dialogue"
)

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	s := New(time.Now())
	s.append(RoleAssistant, "hello", time.Now())
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Messages[0].Content = "mutated"
	s.CollectedData.City = "서울"

	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Messages[0].Content != "hello" || got.CollectedData.City != "" {
		t.Fatalf("stored session aliased caller state: %+v", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	base := time.Now()
	store.now = func() time.Time { return base }

	s := New(base.Add(-30 * time.Minute))
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Load(ctx, s.ID); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	store.now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, err := store.Load(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after ttl, got %v", err)
	}
}

func TestSessionRemaining(t *testing.T) {
	now := time.Now()
	s := &Session{CreatedAt: now.Add(-2 * time.Hour)}
	if got := s.Remaining(now, 3*time.Hour); got != time.Hour {
		t.Fatalf("expected 1h remaining, got %s", got)
	}
	if got := s.Remaining(now, time.Hour); got != 0 {
		t.Fatalf("expected 0 remaining, got %s", got)
	}
	if !s.Expired(now, 2*time.Hour) {
		t.Fatal("expected expired at exactly ttl")
	}
}

func TestHistoryWindow(t *testing.T) {
	s := New(time.Now())
	for i := 0; i < 15; i++ {
		s.append(RoleUser, string(rune('a'+i)), time.Now())
	}
	h := s.History(HistoryWindow)
	if len(h) != HistoryWindow {
		t.Fatalf("expected %d messages, got %d", HistoryWindow, len(h))
	}
	if h[0].Content != "f" {
		t.Fatalf("expected window to start at the 6th message, got %q", h[0].Content)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TRIPKIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIPKIT_TEST_REDIS_ADDR not set; skipping redis-backed tests")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, time.Hour)
	s := New(time.Now())
	s.CollectedData.City = "파리"
	s.LastPicks = dialogue.Picks{dialogue.SlotCity: 2}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Cleanup(func() { rdb.Del(ctx, redisKey(s.ID)) })

	ttl, err := rdb.TTL(ctx, redisKey(s.ID)).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected key ttl %s", ttl)
	}

	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CollectedData.City != "파리" || got.LastPicks[dialogue.SlotCity] != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	if _, err := store.Load(ctx, "session_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreRoundTripAndPurge(t *testing.T) {
	store, db := setupPGStore(t)
	ctx := context.Background()

	s := New(time.Now())
	s.CurrentStep = dialogue.StepConcept
	s.CollectedData = dialogue.Profile{City: "리스본", SpotName: "알파마"}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.CurrentStep = dialogue.StepOutfit
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentStep != dialogue.StepOutfit || got.CollectedData.SpotName != "알파마" {
		t.Fatalf("unexpected session %+v", got)
	}

	old := New(time.Now().Add(-8 * 24 * time.Hour))
	if err := store.Save(ctx, old); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if _, err := store.Load(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be hidden, got %v", err)
	}
	n, err := store.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged row, got %d", n)
	}

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM chat_sessions").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 remaining row, got %d", count)
	}
}

// setupPGStore skips the test when TRIPKIT_TEST_DSN is not set.
func setupPGStore(t *testing.T) (*PGStore, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TRIPKIT_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPKIT_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE chat_sessions"); err != nil {
		t.Fatalf("truncate chat_sessions: %v", err)
	}
	return NewPGStore(db, DefaultTTL), db
}
