package records

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/congo-pay/pocketbank/internal/common"
)

// DefaultKey is the well-known key the user collection is stored under.
const DefaultKey = "users"

// Backend persists one serialized document per key. Get returns (nil, nil)
// when the key has never been written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is the durable mapping from user id to UserRecord. The whole
// collection is one JSON array under a single key; every write replaces it.
//
// Update is the only write path that serialises callers, and only inside
// this process. Two processes sharing a backend race: last writer wins.
type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

// NewStore builds a store over backend. An empty key selects DefaultKey.
func NewStore(backend Backend, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, key: key, logger: logger}
}

// Key returns the document key.
func (s *Store) Key() string { return s.key }

// Load returns the persisted collection in stored order. An absent or empty
// document yields an empty slice.
func (s *Store) Load(ctx context.Context) ([]UserRecord, error) {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, common.Storage("load "+s.key, err)
	}
	return decode(raw)
}

// Save replaces the persisted collection. A failure may leave the backend
// in whatever state its own write semantics produce.
func (s *Store) Save(ctx context.Context, users []UserRecord) error {
	if users == nil {
		users = []UserRecord{}
	}
	payload, err := json.Marshal(users)
	if err != nil {
		return common.Storage("encode "+s.key, err)
	}
	if err := s.backend.Set(ctx, s.key, payload); err != nil {
		return common.Storage("save "+s.key, err)
	}
	return nil
}

// FindByID returns the record with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (UserRecord, error) {
	users, err := s.Load(ctx)
	if err != nil {
		return UserRecord{}, err
	}
	idx := IndexOf(users, id)
	if idx < 0 {
		return UserRecord{}, common.NotFoundf("user %s", id)
	}
	return users[idx], nil
}

// Update runs one read-modify-write cycle under the store's writer lock. fn
// receives a private copy of the collection and returns the collection to
// persist. Nothing is written when fn fails. On success the persisted
// collection is returned.
func (s *Store) Update(ctx context.Context, fn func(users []UserRecord) ([]UserRecord, error)) ([]UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	next, err := fn(cloneAll(users))
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, next); err != nil {
		s.logger.Error("records.save failed", slog.String("key", s.key), slog.Any("error", err))
		return nil, err
	}
	return next, nil
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf(users []UserRecord, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func decode(raw []byte) ([]UserRecord, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []UserRecord{}, nil
	}
	var users []UserRecord
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, common.Storage("decode", err)
	}
	if users == nil {
		users = []UserRecord{}
	}
	return users, nil
}
