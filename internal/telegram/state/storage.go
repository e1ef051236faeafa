package state

import (
	"context"
	"errors"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a Telegram user has no bound chat session.
var ErrNotFound = errors.New("telegram session not found")

// Storage maps a Telegram user ID to the chat-session ID that user is
// currently driving. One session per user at a time.
type Storage interface {
	GetSessionID(ctx context.Context, userID int64) (string, error)
	SetSessionID(ctx context.Context, userID int64, sessionID string) error
	Delete(ctx context.Context, userID int64) error
}

// CacheStorage keeps the binding in an in-process TTL cache. Idle users fall
// out of the cache together with their backend session, so both sides expire
// on the same clock.
type CacheStorage struct {
	cache *gocache.Cache
}

func NewCacheStorage(ttl, cleanupInterval time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (s *CacheStorage) GetSessionID(_ context.Context, userID int64) (string, error) {
	v, ok := s.cache.Get(key(userID))
	if !ok {
		return "", ErrNotFound
	}
	return v.(string), nil
}

func (s *CacheStorage) SetSessionID(_ context.Context, userID int64, sessionID string) error {
	s.cache.SetDefault(key(userID), sessionID)
	return nil
}

func (s *CacheStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(key(userID))
	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
