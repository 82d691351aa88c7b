package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandpulse/monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubModelServer(t *testing.T, classes []classScore) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([][]classScore{classes}))
	}))
}

func TestModelScorer_StarMapping(t *testing.T) {
	tests := []struct {
		name          string
		classes       []classScore
		expectedScore float64
		expectedLabel string
	}{
		{
			name: "Five stars is fully positive",
			classes: []classScore{
				{Label: "5 stars", Score: 0.92},
				{Label: "4 stars", Score: 0.05},
			},
			expectedScore: 1.0,
			expectedLabel: models.SentimentPositive,
		},
		{
			name: "One star is fully negative",
			classes: []classScore{
				{Label: "1 star", Score: 0.88},
				{Label: "2 stars", Score: 0.07},
			},
			expectedScore: 0.0,
			expectedLabel: models.SentimentNegative,
		},
		{
			name: "Three stars is neutral",
			classes: []classScore{
				{Label: "3 stars", Score: 0.61},
				{Label: "4 stars", Score: 0.2},
			},
			expectedScore: 0.5,
			expectedLabel: models.SentimentNeutral,
		},
		{
			name: "Highest probability class wins regardless of order",
			classes: []classScore{
				{Label: "1 star", Score: 0.1},
				{Label: "4 stars", Score: 0.7},
				{Label: "5 stars", Score: 0.2},
			},
			expectedScore: 0.75,
			expectedLabel: models.SentimentPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newStubModelServer(t, tt.classes)
			defer server.Close()

			scorer := NewModelScorer(server.URL, "stub-sentiment-model")

			result, err := scorer.Score("some mention text")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.Equal(t, LabelForScore(result.Score), result.Label)
		})
	}
}

func TestModelScorer_ConfidencePassedThrough(t *testing.T) {
	server := newStubModelServer(t, []classScore{{Label: "4 stars", Score: 0.83}})
	defer server.Close()

	scorer := NewModelScorer(server.URL, "stub-sentiment-model")

	result, err := scorer.Score("solid product overall")
	require.NoError(t, err)
	assert.Equal(t, 0.83, result.Confidence)
	assert.Equal(t, "stub-sentiment-model", result.Model)
}

func TestModelScorer_EmptyTextSkipsInference(t *testing.T) {
	scorer := NewModelScorer("http://127.0.0.1:1", "stub-sentiment-model")

	result, err := scorer.Score("   ")
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, models.SentimentNeutral, result.Label)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestModelScorer_ServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scorer := NewModelScorer(server.URL, "stub-sentiment-model")

	_, err := scorer.Score("some mention text")
	assert.Error(t, err)
}

func TestModelScorer_Unconfigured(t *testing.T) {
	scorer := NewModelScorer("", "stub-sentiment-model")

	assert.False(t, scorer.Available())

	_, err := scorer.Score("some mention text")
	assert.Error(t, err)
}

func TestParseStarLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected int
		wantErr  bool
	}{
		{"5 stars", 5, false},
		{"1 star", 1, false},
		{" 3 stars ", 3, false},
		{"0 stars", 0, true},
		{"6 stars", 0, true},
		{"POSITIVE", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		star, err := parseStarLabel(tt.label)
		if tt.wantErr {
			assert.Error(t, err, "label %q", tt.label)
		} else {
			assert.NoError(t, err, "label %q", tt.label)
			assert.Equal(t, tt.expected, star)
		}
	}
}
