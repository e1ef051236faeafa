package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacetech/solace-backend/internal/entity"
)

func TestSessionCache_SaveGetDelete(t *testing.T) {
	store := NewSessionCache(time.Minute, time.Minute)
	ctx := context.Background()

	sess := &entity.Session{
		ID:         "s1",
		Status:     entity.SessionStatusAwaitingAnswer,
		CostBucket: entity.CostBucketHigh,
		Answers:    map[entity.QuestionKey]*string{},
	}

	require.NoError(t, store.Save(ctx, sess))
	assert.False(t, sess.UpdatedAt.IsZero(), "save stamps UpdatedAt")

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Status, got.Status)
	assert.Equal(t, sess.CostBucket, got.CostBucket)

	require.NoError(t, store.Delete(ctx, "s1"))

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionCache_GetReturnsIndependentCopies(t *testing.T) {
	store := NewSessionCache(time.Minute, time.Minute)
	ctx := context.Background()

	answer := "Brooklyn"
	require.NoError(t, store.Save(ctx, &entity.Session{
		ID:           "s1",
		Status:       entity.SessionStatusAwaitingAnswer,
		LastAskedKey: "Location",
		Answers:      map[entity.QuestionKey]*string{"Location": &answer},
		Transcript:   []entity.ChatMessage{{Role: entity.ChatRoleAssistant, Content: "Which part of NYC?"}},
	}))

	first, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	// mutations on one copy must not leak into the store or other copies
	first.Transcript = append(first.Transcript, entity.ChatMessage{Role: entity.ChatRoleUser, Content: "Queens"})
	overwrite := "Queens"
	first.Answers["Location"] = &overwrite
	first.Status = entity.SessionStatusComplete

	second, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Transcript, 1)
	assert.Equal(t, entity.SessionStatusAwaitingAnswer, second.Status)
	require.NotNil(t, second.Answers["Location"])
	assert.Equal(t, "Brooklyn", *second.Answers["Location"])
}

func TestSessionCache_Expiry(t *testing.T) {
	store := NewSessionCache(10*time.Millisecond, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s1"}))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
