package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrEmptyMessage = errors.New("message is empty")
)

// Repository persists whole session snapshots. Load returns ErrNotFound for
// missing or expired sessions.
type Repository interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// MemoryStore keeps sessions in process; used by the demo and tests.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s := v.(*Session)
	if s.Expired(m.now(), m.ttl) {
		m.cache.Delete(id)
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	left := s.Remaining(m.now(), m.ttl)
	if left == 0 {
		m.cache.Delete(s.ID)
		return nil
	}
	m.cache.Set(s.ID, s.Clone(), left)
	return nil
}

const redisKeyPrefix = "tripkit:session:"

// RedisStore keeps one JSON value per session with a TTL that ends at expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now(), r.ttl) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	left := s.Remaining(r.now(), r.ttl)
	if left == 0 {
		return r.rdb.Del(ctx, redisKey(s.ID)).Err()
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKey(s.ID), raw, left).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// PGStore keeps session snapshots as JSONB rows; see migrations/0001_sessions.sql.
type PGStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

func NewPGStore(db *pgxpool.Pool, ttl time.Duration) *PGStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PGStore{db: db, ttl: ttl}
}

func (p *PGStore) Load(ctx context.Context, id string) (*Session, error) {
	var raw []byte
	err := p.db.QueryRow(ctx, `
		SELECT data FROM chat_sessions
		WHERE id = $1 AND expires_at > NOW()`, id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (p *PGStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO chat_sessions (id, data, current_step, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			current_step = EXCLUDED.current_step,
			updated_at = EXCLUDED.updated_at`,
		s.ID, raw, string(s.CurrentStep), s.CreatedAt, s.LastActiveAt, s.CreatedAt.Add(p.ttl),
	)
	return err
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (p *PGStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM chat_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RunPurger purges expired sessions every interval until ctx is done.
func (p *PGStore) RunPurger(ctx context.Context, interval time.Duration, onErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.PurgeExpired(ctx); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
