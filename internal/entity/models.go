package entity

import (
	"fmt"
	"time"
)

type SessionStatus string

// Session status represents where the questionnaire currently stands.
const (
	// SessionStatusAwaitingAnswer means at least one question is still open.
	SessionStatusAwaitingAnswer SessionStatus = "AWAITING_ANSWER"

	// SessionStatusComplete means every question has an answer. Terminal
	// until the session is reset.
	SessionStatusComplete SessionStatus = "COMPLETE"
)

// CostBucket is the coarse project-size category that selects which of the
// pre-fitted cost regressors is used.
type CostBucket string

const (
	CostBucketLow  CostBucket = "low"
	CostBucketMid  CostBucket = "mid"
	CostBucketHigh CostBucket = "high"
)

func (b CostBucket) Validate() error {
	switch b {
	case CostBucketLow, CostBucketMid, CostBucketHigh:
		return nil
	default:
		return fmt.Errorf("unknown cost bucket: %s", b)
	}
}

// QuestionKey identifies one questionnaire field (e.g. "ProjectDescription").
type QuestionKey string

// QuestionSpec is one entry of the fixed, ordered questionnaire.
type QuestionSpec struct {
	Key    QuestionKey `json:"key"`
	Prompt string      `json:"prompt"`
}

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role-tagged entry of the session transcript and of the
// message lists sent to the LLM.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Session holds all state owned by one questionnaire conversation. Answers
// are write-once per key; LastAskedKey is the explicit pointer the next
// submission commits to (it is never recomputed from the answers map).
type Session struct {
	ID           string                  `json:"session_id"`
	UserID       string                  `json:"user_id,omitempty"`
	Status       SessionStatus           `json:"status"`
	CostBucket   CostBucket              `json:"cost_bucket"`
	Answers      map[QuestionKey]*string `json:"answers"`
	LastAskedKey QuestionKey             `json:"last_asked_key,omitempty"`
	Transcript   []ChatMessage           `json:"transcript"`
	Plan         *PlanDocument           `json:"plan,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// SavedPlan is an archived plan document persisted in Postgres.
type SavedPlan struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"session_id"`
	Title      string       `json:"title"`
	CostBucket CostBucket   `json:"cost_bucket"`
	Document   PlanDocument `json:"document"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Feedback is one user feedback entry, logged to CSV and mailed out.
type Feedback struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Text   string `json:"feedback"`
}

// ActivityEvent is one row of the append-only activity log.
type ActivityEvent struct {
	UserID string `json:"user_id"`
	Page   string `json:"page"`
	Action string `json:"action"`
}
