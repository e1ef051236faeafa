package entity

// API request/response DTOs.

type StartSessionRequest struct {
	UserID     string     `json:"user_id,omitempty"`
	CostBucket CostBucket `json:"cost_bucket,omitempty"`
}

type SubmitMessageRequest struct {
	Text string `json:"text"`
}

// SessionStateDTO is what the API returns after every interaction: enough for
// a thin client to render the chat and know which question is pending.
type SessionStateDTO struct {
	SessionID    string                  `json:"session_id"`
	Status       SessionStatus           `json:"status"`
	CostBucket   CostBucket              `json:"cost_bucket"`
	Answers      map[QuestionKey]*string `json:"answers"`
	NextQuestion *QuestionSpec           `json:"next_question,omitempty"`
	Reply        string                  `json:"reply,omitempty"`
	Transcript   []ChatMessage           `json:"transcript"`
}

type SavePlanRequest struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
}

type FeedbackRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Text   string `json:"feedback"`
}

// FeedbackResponse reports whether the notification mail went out. A false
// MailSent is a warning, not a failure: the feedback row is already saved.
type FeedbackResponse struct {
	Saved       bool   `json:"saved"`
	MailSent    bool   `json:"mail_sent"`
	MailWarning string `json:"mail_warning,omitempty"`
}

// ExportResult is a rendered download body plus the headers it ships with.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

type ActivityRequest struct {
	UserID string `json:"user_id"`
	Page   string `json:"page"`
	Action string `json:"action"`
}
