package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/entity"
)

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             5 * time.Second,
			IdleConnTimeout:       5 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 "test-key",
			Url:                   url,
		},
		ChatCompletionsEndpoint: "/v1/chat/completions",
		Model:                   "mistral-large-latest",
		Temperature:             0.2,
		MaxTokens:               1024,
	}
}

func TestComplete_ReturnsFirstChoiceText(t *testing.T) {
	var gotReq entity.ChatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := entity.ChatCompletionResponse{
			ID:    "cmpl-1",
			Model: "mistral-large-latest",
			Choices: []entity.ChatCompletionChoice{
				{Message: entity.ChatMessage{Role: entity.ChatRoleAssistant, Content: "  hello there  "}},
			},
			Usage: entity.ChatCompletionUsage{TotalTokens: 42},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	out, err := conn.Complete(context.Background(), []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "be brief"},
		{Role: entity.ChatRoleUser, Content: "hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello there", out, "leading and trailing whitespace is trimmed")
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "mistral-large-latest", gotReq.Model)
	assert.Len(t, gotReq.Messages, 2)
	require.NotNil(t, gotReq.Temperature)
	assert.InDelta(t, 0.2, *gotReq.Temperature, 1e-9)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-2","choices":[]}`))
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestMockConnector_RoutesOnPromptMarkers(t *testing.T) {
	mock := NewMockConnector(zap.NewNop())
	ctx := context.Background()

	plan, err := mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "You summarize the project info."},
		{Role: entity.ChatRoleUser, Content: "... Only output JSON with this structure: {...}"},
	})
	require.NoError(t, err)

	var doc entity.PlanDocument
	require.NoError(t, json.Unmarshal([]byte(plan), &doc), "mock plan must be valid plan JSON")
	assert.Len(t, doc.ConstructionPhases, 5)
	assert.NotEmpty(t, doc.Resources)

	durations, err := mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.ChatRoleUser, Content: "estimate the expected duration in weeks for each phase"},
	})
	require.NoError(t, err)

	var byPhase map[string]string
	require.NoError(t, json.Unmarshal([]byte(durations), &byPhase))
	assert.Contains(t, byPhase, "I. Scope")

	chat, err := mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "Ask only the questions defined.\nNext question:\nWhich part of NYC is the school located in?"},
		{Role: entity.ChatRoleUser, Content: "It is in Queens."},
	})
	require.NoError(t, err)
	assert.Contains(t, chat, "Which part of NYC")
}
