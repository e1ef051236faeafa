package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionComplete  = errors.New("questionnaire is already complete")
	ErrSessionNotReady  = errors.New("questionnaire is not complete yet")
	ErrEmptyAnswer      = errors.New("answer is empty")
	ErrAnswerOverwrite  = errors.New("answer already committed for this question")
	ErrUnknownQuestion  = errors.New("unknown question key")
	ErrPlanNotGenerated = errors.New("no plan has been generated for this session")

	// Plan archive errors
	ErrPlanNotFound = errors.New("plan not found")

	// Prediction errors
	ErrPredictionFailed = errors.New("phase prediction failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
