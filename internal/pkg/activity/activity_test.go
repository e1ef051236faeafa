package activity

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacetech/solace-backend/internal/entity"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLogActivity_HeaderOnFirstWriteOnly(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(filepath.Join(dir, "logs", "activity.csv"), filepath.Join(dir, "feedback.csv"))

	require.NoError(t, logger.LogActivity(entity.ActivityEvent{UserID: "u1", Page: "chat", Action: "start"}))
	require.NoError(t, logger.LogActivity(entity.ActivityEvent{UserID: "u2", Page: "chat", Action: "reset"}))

	rows := readCSV(t, filepath.Join(dir, "logs", "activity.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "user_id", "page_name", "action"}, rows[0])
	assert.Equal(t, "u1", rows[1][1])
	assert.Equal(t, "reset", rows[2][3])
	assert.NotEmpty(t, rows[1][0], "timestamp column is filled")
}

func TestLogFeedback_QuotesCommasAndNewlines(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(filepath.Join(dir, "activity.csv"), filepath.Join(dir, "feedback.csv"))

	require.NoError(t, logger.LogFeedback(entity.Feedback{
		UserID: "u1",
		Email:  "user@example.com",
		Text:   "great tool,\nbut slow",
	}))

	rows := readCSV(t, filepath.Join(dir, "feedback.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "great tool,\nbut slow", rows[1][3])
}
