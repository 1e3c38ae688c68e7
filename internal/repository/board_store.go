package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

// SnapshotVersion is the board envelope schema version understood by this build.
const SnapshotVersion = 1

// ErrNoSnapshot signals that the store holds no board yet (first run).
// It is distinct from a store failure: an empty-but-present envelope,
// as left behind after deleting every notice, does not raise it.
var ErrNoSnapshot = errors.New("no board snapshot in store")

// BoardSnapshot is the envelope persisted under the single board key.
type BoardSnapshot struct {
	Version  int             `json:"version"`
	SeededAt *time.Time      `json:"seeded_at,omitempty"`
	SavedAt  time.Time       `json:"saved_at"`
	Notices  []models.Notice `json:"notices"`
}

// BoardStore is the persistence boundary for the notice collection.
type BoardStore interface {
	Load(ctx context.Context) (*BoardSnapshot, error)
	Save(ctx context.Context, snapshot BoardSnapshot) error
}

// RedisBoardStore persists the whole board as one JSON value under one key.
type RedisBoardStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisBoardStore constructs the store.
func NewRedisBoardStore(client *redis.Client, key string, logger *zap.Logger) *RedisBoardStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBoardStore{client: client, key: key, logger: logger}
}

// Load fetches and decodes the board envelope. Returns ErrNoSnapshot when
// the key is absent.
func (s *RedisBoardStore) Load(ctx context.Context) (*BoardSnapshot, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var snapshot BoardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal board snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported board snapshot version %d", snapshot.Version)
	}
	if snapshot.Notices == nil {
		snapshot.Notices = []models.Notice{}
	}
	return &snapshot, nil
}

// Save encodes and writes the board envelope. The value has no TTL: the
// board is durable state, not a cache entry.
func (s *RedisBoardStore) Save(ctx context.Context, snapshot BoardSnapshot) error {
	snapshot.Version = SnapshotVersion
	snapshot.SavedAt = time.Now().UTC()
	if snapshot.Notices == nil {
		snapshot.Notices = []models.Notice{}
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal board snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}

	return nil
}

// Ping reports whether the underlying store is reachable.
func (s *RedisBoardStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

type saveObserver interface {
	ObserveBoardSave(duration time.Duration)
}

// InstrumentedBoardStore decorates a BoardStore with save latency metrics.
type InstrumentedBoardStore struct {
	inner    BoardStore
	observer saveObserver
}

// NewInstrumentedBoardStore wraps the store. A nil observer passes through.
func NewInstrumentedBoardStore(inner BoardStore, observer saveObserver) *InstrumentedBoardStore {
	return &InstrumentedBoardStore{inner: inner, observer: observer}
}

func (s *InstrumentedBoardStore) Load(ctx context.Context) (*BoardSnapshot, error) {
	return s.inner.Load(ctx)
}

func (s *InstrumentedBoardStore) Save(ctx context.Context, snapshot BoardSnapshot) error {
	start := time.Now()
	err := s.inner.Save(ctx, snapshot)
	if s.observer != nil {
		s.observer.ObserveBoardSave(time.Since(start))
	}
	return err
}
