// Package questionnaire implements the sequential question flow: a fixed
// ordered list of questions, answered strictly in declaration order, with
// write-once answer commits.
package questionnaire

import (
	"fmt"
	"strings"
	"time"

	"github.com/solacetech/solace-backend/internal/entity"
)

// Machine drives the questionnaire over a session's answer map. The spec list
// is immutable for the machine's lifetime; all mutable state lives on the
// session, so one machine serves every concurrent session.
type Machine struct {
	specs []entity.QuestionSpec
}

func New(specs []entity.QuestionSpec) *Machine {
	// Defensive copy: the question order is the core invariant and must not
	// shift under a live session.
	copied := make([]entity.QuestionSpec, len(specs))
	copy(copied, specs)
	return &Machine{specs: copied}
}

// Specs returns the ordered question list.
func (m *Machine) Specs() []entity.QuestionSpec {
	return m.specs
}

// Begin initializes a session's questionnaire state: every answer nil, the
// first question pending.
func (m *Machine) Begin(sess *entity.Session) {
	answers := make(map[entity.QuestionKey]*string, len(m.specs))
	for _, spec := range m.specs {
		answers[spec.Key] = nil
	}
	sess.Answers = answers
	sess.Status = entity.SessionStatusAwaitingAnswer
	sess.LastAskedKey = ""
	if len(m.specs) > 0 {
		sess.LastAskedKey = m.specs[0].Key
	} else {
		sess.Status = entity.SessionStatusComplete
	}
}

// Reset clears all answers and the transcript and starts over.
func (m *Machine) Reset(sess *entity.Session) {
	m.Begin(sess)
	sess.Transcript = nil
	sess.Plan = nil
	sess.UpdatedAt = time.Now()
}

// NextUnanswered scans the spec list in declaration order and returns the
// first question whose answer is nil or empty. ok is false once the
// questionnaire is complete.
func (m *Machine) NextUnanswered(answers map[entity.QuestionKey]*string) (spec entity.QuestionSpec, ok bool) {
	for _, s := range m.specs {
		v, exists := answers[s.Key]
		if !exists || v == nil || *v == "" {
			return s, true
		}
	}
	return entity.QuestionSpec{}, false
}

// Submit commits the user's text as the answer to the question that was
// pending before this submission (sess.LastAskedKey), then advances the
// pending pointer to the next unanswered question.
//
// A whitespace-only submission changes nothing and returns ErrEmptyAnswer so
// the caller re-prompts the same question. A committed answer is never
// overwritten.
func (m *Machine) Submit(sess *entity.Session, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return entity.ErrEmptyAnswer
	}

	if sess.Status == entity.SessionStatusComplete {
		return entity.ErrSessionComplete
	}

	key := sess.LastAskedKey
	if key == "" {
		// Begin was never called for this session.
		return fmt.Errorf("%w: no question pending", entity.ErrUnknownQuestion)
	}
	if _, exists := sess.Answers[key]; !exists {
		return fmt.Errorf("%w: %s", entity.ErrUnknownQuestion, key)
	}
	if v := sess.Answers[key]; v != nil && *v != "" {
		return fmt.Errorf("%w: %s", entity.ErrAnswerOverwrite, key)
	}

	sess.Answers[key] = &trimmed
	sess.UpdatedAt = time.Now()

	next, ok := m.NextUnanswered(sess.Answers)
	if !ok {
		sess.LastAskedKey = ""
		sess.Status = entity.SessionStatusComplete
		return nil
	}
	sess.LastAskedKey = next.Key
	sess.Status = entity.SessionStatusAwaitingAnswer
	return nil
}

// Pending returns the question the session is currently waiting on.
func (m *Machine) Pending(sess *entity.Session) (entity.QuestionSpec, bool) {
	if sess.Status == entity.SessionStatusComplete || sess.LastAskedKey == "" {
		return entity.QuestionSpec{}, false
	}
	for _, s := range m.specs {
		if s.Key == sess.LastAskedKey {
			return s, true
		}
	}
	return entity.QuestionSpec{}, false
}
