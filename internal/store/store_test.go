package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode reports "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"},
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "compass.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{Provider: "openai", Model: "gpt-4o", Purpose: "evaluation", Success: true}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, last)
		last = n
	}
}

func TestLLMEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"evaluation", "evaluation", "smoke"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 10 * (i + 1),
			LatencyMs:    int64(200 * (i + 1)),
			Success:      i != 1,
			ErrorMessage: map[bool]string{true: "", false: "boom"}[i != 1],
			RequestBody:  "[user]\nhello",
			ResponseBody: `{"ok":true}`,
		}))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "smoke", events[0].Purpose, "newest first")
	assert.False(t, events[1].Success)
	assert.Equal(t, "boom", events[1].ErrorMessage)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "evaluation"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	recent, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	old, err := repo.QueryLLMEvents(ctx, QueryOpts{To: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, old)

	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nhello", got.RequestBody)
	assert.Equal(t, `{"ok":true}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o", Purpose: "evaluation", InputTokens: 1000, OutputTokens: 200, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "evaluation", InputTokens: 3000, OutputTokens: 400, LatencyMs: 300, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "smoke", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	}
	for _, d := range data {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "evaluation", Calls: 2, InputTokens: 4000, OutputTokens: 600, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-sonnet-4-20250514", byModel[0].Model)
	assert.Equal(t, 1, byModel[0].Calls)
	assert.Equal(t, "gpt-4o", byModel[1].Model)
}

func TestAssessments_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Interleave with an llm event to exercise the shared sequence.
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "evaluation", Success: true}))
	require.NoError(t, repo.AppendAssessment(ctx, AssessmentEventData{
		SessionID:  "s-1",
		Model:      "gpt-4o",
		Total:      17,
		Possible:   25,
		Percentage: 68,
		Tier:       "Good",
		Scores: []CompetencyScore{
			{Competency: "Risk Tolerance", Score: 5},
			{Competency: "Work Style", Score: 3},
		},
	}))
	require.NoError(t, repo.AppendAssessment(ctx, AssessmentEventData{SessionID: "s-2", Total: 25, Possible: 25, Percentage: 100, Tier: "Outstanding"}))

	got, err := repo.QueryAssessments(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s-2", got[0].SessionID)
	assert.Empty(t, got[0].Scores)

	first := got[1]
	assert.Equal(t, int64(2), first.Sequence)
	assert.Equal(t, 17, first.Total)
	assert.InDelta(t, 68.0, first.Percentage, 1e-9)
	assert.Equal(t, "Good", first.Tier)
	assert.Equal(t, []CompetencyScore{{"Risk Tolerance", 5}, {"Work Style", 3}}, first.Scores)

	none, err := repo.QueryAssessments(ctx, QueryOpts{From: time.Now().Add(time.Minute)})
	require.NoError(t, err)
	assert.Empty(t, none)
}
