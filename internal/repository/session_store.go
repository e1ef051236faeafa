package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/solacetech/solace-backend/internal/entity"
)

// SessionStore defines the interface for chat session state.
type SessionStore interface {
	Save(ctx context.Context, sess *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

var _ SessionStore = &SessionCache{}

// SessionCache keeps sessions in an expiring in-memory cache. Conversations
// are short-lived; an idle session past its TTL is simply gone and the client
// starts over. The TTL resets on every save, so active sessions never expire
// mid-conversation.
//
// Sessions are stored as serialized snapshots: every Get returns an
// independent copy, so concurrent interactions (chi requests, Telegram
// update goroutines) each own their session state exclusively and never
// mutate through a shared pointer. Concurrent saves resolve last-write-wins.
type SessionCache struct {
	cache *gocache.Cache
}

func NewSessionCache(ttl, cleanupInterval time.Duration) *SessionCache {
	return &SessionCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (s *SessionCache) Save(_ context.Context, sess *entity.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("snapshot session %s: %w", sess.ID, err)
	}
	s.cache.SetDefault(sess.ID, data)
	return nil
}

func (s *SessionCache) Get(_ context.Context, id string) (*entity.Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	var sess entity.Session
	if err := json.Unmarshal(v.([]byte), &sess); err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *SessionCache) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
