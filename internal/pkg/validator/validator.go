// Package validator holds request validation shared by the HTTP handlers.
package validator

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/solacetech/solace-backend/internal/entity"
)

// Validator validates inbound API requests.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateStartSession validates StartSessionRequest. An empty cost bucket is
// allowed and defaults downstream.
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if req.CostBucket != "" {
		if err := req.CostBucket.Validate(); err != nil {
			return fmt.Errorf("%w: cost_bucket: %v", entity.ErrInvalidParameter, err)
		}
	}

	return nil
}

// ValidateSubmitMessage validates a chat message submission.
func (v *Validator) ValidateSubmitMessage(req *entity.SubmitMessageRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}

	return nil
}

// ValidateSavePlan validates a plan archive request.
func (v *Validator) ValidateSavePlan(req *entity.SavePlanRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: session_id", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}

	return nil
}

// ValidateFeedback validates a feedback submission. The email is optional but
// must parse when present.
func (v *Validator) ValidateFeedback(req *entity.FeedbackRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: feedback", entity.ErrMissingField)
	}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return fmt.Errorf("%w: email: %v", entity.ErrInvalidParameter, err)
		}
	}

	return nil
}

// ValidateActivity validates an activity log event.
func (v *Validator) ValidateActivity(req *entity.ActivityRequest) error {
	if req.Action == "" {
		return fmt.Errorf("%w: action", entity.ErrMissingField)
	}

	return nil
}
