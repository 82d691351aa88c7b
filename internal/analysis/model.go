package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// maxModelInputLength bounds the text sent to the inference endpoint;
// transformer models truncate around 512 tokens anyway.
const maxModelInputLength = 512

// inferenceRequest is the payload for a hosted text-classification endpoint
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// classScore is one class probability from the model output
type classScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ModelScorer delegates scoring to a hosted pretrained multilingual
// sentiment classifier that rates text with 1 to 5 stars.
type ModelScorer struct {
	client    *resty.Client
	endpoint  string
	modelName string
}

var _ SentimentScorer = (*ModelScorer)(nil)

// NewModelScorer creates a scorer backed by a hosted inference endpoint.
// An empty endpoint yields a scorer that reports itself unavailable.
func NewModelScorer(endpoint, modelName string) *ModelScorer {
	return &ModelScorer{
		client:    resty.New().SetTimeout(15 * time.Second),
		endpoint:  endpoint,
		modelName: modelName,
	}
}

// Name returns the configured model identifier
func (s *ModelScorer) Name() string { return s.modelName }

// Available reports whether an inference endpoint is configured
func (s *ModelScorer) Available() bool { return s.endpoint != "" }

// Score sends the text to the inference endpoint and maps the star
// rating onto the shared result shape. The model's own class probability
// is passed through as confidence.
func (s *ModelScorer) Score(text string) (Result, error) {
	if !s.Available() {
		return Result{}, fmt.Errorf("sentiment model endpoint not configured")
	}

	if strings.TrimSpace(text) == "" {
		return Result{Score: 0.5, Label: LabelForScore(0.5), Confidence: 0, Model: s.modelName}, nil
	}

	if len(text) > maxModelInputLength {
		text = text[:maxModelInputLength]
	}

	var output [][]classScore
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(inferenceRequest{Inputs: text}).
		SetResult(&output).
		Post(s.endpoint)

	if err != nil {
		return Result{}, fmt.Errorf("model inference request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return Result{}, fmt.Errorf("model endpoint returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if len(output) == 0 || len(output[0]) == 0 {
		return Result{}, fmt.Errorf("model returned empty prediction")
	}

	// Pick the predicted class
	predicted := output[0][0]
	for _, class := range output[0][1:] {
		if class.Score > predicted.Score {
			predicted = class
		}
	}

	star, err := parseStarLabel(predicted.Label)
	if err != nil {
		return Result{}, err
	}

	score := float64(star-1) / 4.0
	return Result{
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: predicted.Score,
		Model:      s.modelName,
	}, nil
}

// parseStarLabel extracts the rating from labels like "4 stars" or "1 star"
func parseStarLabel(label string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) == 0 {
		return 0, fmt.Errorf("model returned empty label")
	}

	star, err := strconv.Atoi(fields[0])
	if err != nil || star < 1 || star > 5 {
		return 0, fmt.Errorf("unexpected model label %q", label)
	}

	return star, nil
}
