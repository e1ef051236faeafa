// Package activity appends user activity and feedback rows to CSV files,
// creating the file with a header row on first write.
package activity

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/solacetech/solace-backend/internal/entity"
)

var activityHeader = []string{"timestamp", "user_id", "page_name", "action"}
var feedbackHeader = []string{"timestamp", "user_id", "email", "feedback"}

// Logger serializes appends so concurrent requests never interleave rows.
type Logger struct {
	mu           sync.Mutex
	activityPath string
	feedbackPath string
}

func NewLogger(activityPath, feedbackPath string) *Logger {
	return &Logger{
		activityPath: activityPath,
		feedbackPath: feedbackPath,
	}
}

// LogActivity appends one activity row with a UTC timestamp.
func (l *Logger) LogActivity(event entity.ActivityEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		event.UserID,
		event.Page,
		event.Action,
	}
	return appendRow(l.activityPath, activityHeader, row)
}

// LogFeedback appends one feedback row with a UTC timestamp.
func (l *Logger) LogFeedback(fb entity.Feedback) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		fb.UserID,
		fb.Email,
		fb.Text,
	}
	return appendRow(l.feedbackPath, feedbackHeader, row)
}

func appendRow(path string, header, row []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write log header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write log row: %w", err)
	}

	w.Flush()
	return w.Error()
}
