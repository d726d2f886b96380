package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"essay-backend/domain/core/entities"
)

// ErrInvalidResponse means the model output is not a complete evaluation.
var ErrInvalidResponse = errors.New("invalid evaluation response")

type competencyPayload struct {
	Score        *float64 `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// evaluationPayload mirrors the JSON the prompts ask for. totalScore is
// not read; the total is always derived from the competencies.
type evaluationPayload struct {
	Competency1     *competencyPayload `json:"competency1"`
	Competency2     *competencyPayload `json:"competency2"`
	Competency3     *competencyPayload `json:"competency3"`
	Competency4     *competencyPayload `json:"competency4"`
	Competency5     *competencyPayload `json:"competency5"`
	OverallFeedback string             `json:"overallFeedback"`
}

// parseEvaluation reads a model response. Markdown fences and text around
// the JSON object are ignored.
func parseEvaluation(raw string) (*entities.Evaluation, error) {
	body := stripFences(raw)
	if start, end := strings.Index(body, "{"), strings.LastIndex(body, "}"); start >= 0 && end > start {
		body = body[start : end+1]
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var ev entities.Evaluation
	for i, c := range []*competencyPayload{
		payload.Competency1, payload.Competency2, payload.Competency3,
		payload.Competency4, payload.Competency5,
	} {
		if c == nil || c.Score == nil {
			return nil, fmt.Errorf("%w: competency%d missing", ErrInvalidResponse, i+1)
		}
		score := math.Round(*c.Score)
		if score < 0 || score > entities.MaxCompetencyScore {
			return nil, fmt.Errorf("%w: competency%d score %v out of range", ErrInvalidResponse, i+1, *c.Score)
		}
		ev.Competencies[i] = entities.CompetencyScore{
			Score:        int(score),
			Feedback:     c.Feedback,
			Strengths:    c.Strengths,
			Improvements: c.Improvements,
		}
	}
	ev.OverallFeedback = payload.OverallFeedback
	return &ev, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
