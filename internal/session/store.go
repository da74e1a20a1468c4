package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a session has no value under the given key.
var ErrNotFound = errors.New("session: key not found")

// Store is per-client key/value state scoped by session ID. Handlers only
// see this interface, so tests swap in MemoryStore without cookies or Redis.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
	Ping(ctx context.Context) error
}

const redisKeyPrefix = "session:%s"

// RedisStore keeps session state in Redis hashes with a rolling TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisStore(redisURL string, ttl time.Duration, logger *logrus.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 20
	opts.MinIdleConns = 5

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Session store connected to Redis")

	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := s.client.HGet(ctx, fmt.Sprintf(redisKeyPrefix, sessionID), key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	redisKey := fmt.Sprintf(redisKeyPrefix, sessionID)
	if err := s.client.HSet(ctx, redisKey, key, value).Err(); err != nil {
		return err
	}
	// Refresh the session lifetime on every write
	return s.client.Expire(ctx, redisKey, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.client.HDel(ctx, fmt.Sprintf(redisKeyPrefix, sessionID), key).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is an in-process Store used in tests and as the fallback when
// no Redis URL is configured. Entries expire lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	ttl      time.Duration
}

type memorySession struct {
	values   map[string]string
	deadline time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || s.expired(sess) {
		return "", ErrNotFound
	}
	value, ok := sess.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess) {
		sess = &memorySession{values: make(map[string]string)}
		s.sessions[sessionID] = sess
	}
	sess.values[key] = value
	if s.ttl > 0 {
		sess.deadline = time.Now().Add(s.ttl)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		delete(sess.values, key)
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) expired(sess *memorySession) bool {
	return !sess.deadline.IsZero() && time.Now().After(sess.deadline)
}
