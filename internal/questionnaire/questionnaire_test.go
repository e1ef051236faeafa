package questionnaire

import (
	"testing"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpecs() []entity.QuestionSpec {
	return []entity.QuestionSpec{
		{Key: "ProjectDescription", Prompt: "Please describe the project in a few sentences."},
		{Key: "Location", Prompt: "Which part of NYC is the school located in?"},
		{Key: "Timeline", Prompt: "What is the expected construction timeline (in months)?"},
	}
}

func newSession(m *Machine) *entity.Session {
	sess := &entity.Session{ID: "test", CostBucket: entity.CostBucketHigh}
	m.Begin(sess)
	return sess
}

func TestBeginAsksFirstQuestion(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	assert.Equal(t, entity.SessionStatusAwaitingAnswer, sess.Status)
	assert.Equal(t, entity.QuestionKey("ProjectDescription"), sess.LastAskedKey)
	assert.Len(t, sess.Answers, 3)
	for _, v := range sess.Answers {
		assert.Nil(t, v)
	}
}

func TestQuestionsAskedInDeclarationOrder(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	wantOrder := []entity.QuestionKey{"ProjectDescription", "Location", "Timeline"}
	for i, want := range wantOrder {
		require.Equal(t, want, sess.LastAskedKey, "question %d", i)
		require.NoError(t, m.Submit(sess, "answer"))
	}
	assert.Equal(t, entity.SessionStatusComplete, sess.Status)
	assert.Empty(t, sess.LastAskedKey)
}

func TestNextUnansweredSkipsOnlyFilledKeys(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	filled := "somewhere in Queens"
	sess.Answers["ProjectDescription"] = &filled

	spec, ok := m.NextUnanswered(sess.Answers)
	require.True(t, ok)
	assert.Equal(t, entity.QuestionKey("Location"), spec.Key)

	// An explicitly cleared value makes the key pending again.
	empty := ""
	sess.Answers["ProjectDescription"] = &empty
	spec, ok = m.NextUnanswered(sess.Answers)
	require.True(t, ok)
	assert.Equal(t, entity.QuestionKey("ProjectDescription"), spec.Key)
}

func TestWhitespaceSubmissionIsNoOp(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	for _, input := range []string{"", "   ", "\n\t "} {
		err := m.Submit(sess, input)
		assert.ErrorIs(t, err, entity.ErrEmptyAnswer)
		assert.Equal(t, entity.QuestionKey("ProjectDescription"), sess.LastAskedKey)
		assert.Nil(t, sess.Answers["ProjectDescription"])
	}
}

func TestSubmitCommitsToLastAskedKeyExactlyOnce(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	require.NoError(t, m.Submit(sess, "  a new school build  "))
	require.NotNil(t, sess.Answers["ProjectDescription"])
	assert.Equal(t, "a new school build", *sess.Answers["ProjectDescription"])

	// Forcing the pointer back at an answered key must not overwrite it.
	sess.LastAskedKey = "ProjectDescription"
	err := m.Submit(sess, "something else")
	assert.ErrorIs(t, err, entity.ErrAnswerOverwrite)
	assert.Equal(t, "a new school build", *sess.Answers["ProjectDescription"])
}

func TestSubmitAfterCompleteFails(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	for range testSpecs() {
		require.NoError(t, m.Submit(sess, "x"))
	}
	err := m.Submit(sess, "extra")
	assert.ErrorIs(t, err, entity.ErrSessionComplete)
}

func TestResetClearsAnswersAndTranscript(t *testing.T) {
	m := New(testSpecs())
	sess := newSession(m)

	require.NoError(t, m.Submit(sess, "x"))
	sess.Transcript = append(sess.Transcript, entity.ChatMessage{Role: entity.ChatRoleUser, Content: "x"})
	sess.Plan = &entity.PlanDocument{}

	m.Reset(sess)

	assert.Equal(t, entity.SessionStatusAwaitingAnswer, sess.Status)
	assert.Equal(t, entity.QuestionKey("ProjectDescription"), sess.LastAskedKey)
	assert.Nil(t, sess.Answers["ProjectDescription"])
	assert.Empty(t, sess.Transcript)
	assert.Nil(t, sess.Plan)
}

func TestEmptySpecListIsImmediatelyComplete(t *testing.T) {
	m := New(nil)
	sess := &entity.Session{ID: "empty"}
	m.Begin(sess)

	assert.Equal(t, entity.SessionStatusComplete, sess.Status)
	_, ok := m.NextUnanswered(sess.Answers)
	assert.False(t, ok)
}
