package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/solacetech/solace-backend/internal/entity"
)

// ParseError is returned when the LLM's reply does not contain a decodable
// JSON value. It is a distinct type so callers can tell "plan generation
// broke" apart from "no plan yet".
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse LLM response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse LLM response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// stripCodeFences removes a Markdown code-fence wrapper if the whole reply is
// fenced (```json ... ```).
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// ExtractJSON locates the first complete, balanced top-level {...} or [...]
// span in free text. Bracket depth is tracked through strings and escapes, so
// prose before or after the value (even prose containing braces) does not
// confuse extraction the way a greedy regex would.
func ExtractJSON(text string) (string, error) {
	cleaned := stripCodeFences(text)

	start := -1
	var open, close rune
	for i, r := range cleaned {
		if r == '{' || r == '[' {
			start = i
			open = r
			if r == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", &ParseError{Reason: "no JSON object or array found"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := rune(cleaned[i])
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// brackets inside strings do not count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}
	return "", &ParseError{Reason: "unbalanced JSON value"}
}

// ParsePlan decodes the structured construction plan out of an LLM reply.
// Missing optional fields come back as empty collections, never nil.
func ParsePlan(text string) (*entity.PlanDocument, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var doc entity.PlanDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Reason: "plan JSON does not decode", Err: err}
	}
	doc.Normalize()
	return &doc, nil
}

// ParseDurations decodes the per-phase duration reply into a phase-code →
// raw-string map. Values may legitimately arrive as numbers or as strings
// with units; both are kept as strings for the lenient numeric parser
// downstream.
func ParseDurations(text string) (map[string]string, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, &ParseError{Reason: "durations JSON does not decode", Err: err}
	}

	out := make(map[string]string, len(values))
	for phase, v := range values {
		switch t := v.(type) {
		case string:
			out[phase] = t
		case float64:
			out[phase] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			out[phase] = fmt.Sprintf("%v", t)
		}
	}
	return out, nil
}
