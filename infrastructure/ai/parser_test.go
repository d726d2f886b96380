package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEvaluation = `{
  "competency1": {"score": 120, "feedback": "f1", "strengths": ["s"], "improvements": ["i"]},
  "competency2": {"score": 150, "feedback": "f2", "strengths": [], "improvements": []},
  "competency3": {"score": 140, "feedback": "f3"},
  "competency4": {"score": 130.4, "feedback": "f4", "strengths": ["a", "b"], "improvements": []},
  "competency5": {"score": 159.6, "feedback": "f5", "strengths": [], "improvements": ["c"]},
  "totalScore": 999,
  "overallFeedback": "Bom texto."
}`

func TestParseEvaluation(t *testing.T) {
	ev, err := parseEvaluation(validEvaluation)
	require.NoError(t, err)

	var scores []int
	for _, c := range ev.Competencies {
		scores = append(scores, c.Score)
	}
	assert.Equal(t, []int{120, 150, 140, 130, 160}, scores)
	assert.Equal(t, "Bom texto.", ev.OverallFeedback)
	assert.Equal(t, []string{"a", "b"}, ev.Competencies[3].Strengths)
}

func TestParseEvaluationStripsFencesAndProse(t *testing.T) {
	ev, err := parseEvaluation("Here is the evaluation:\n```json\n" + validEvaluation + "\n```\n")
	require.NoError(t, err)
	assert.Equal(t, 120, ev.Competencies[0].Score)
}

func TestParseEvaluationRejectsIncomplete(t *testing.T) {
	tests := map[string]string{
		"not json":            "I cannot grade this essay.",
		"missing competency5": `{"competency1":{"score":1},"competency2":{"score":1},"competency3":{"score":1},"competency4":{"score":1}}`,
		"missing score":       `{"competency1":{"feedback":"x"},"competency2":{"score":1},"competency3":{"score":1},"competency4":{"score":1},"competency5":{"score":1}}`,
		"score too high":      `{"competency1":{"score":240},"competency2":{"score":1},"competency3":{"score":1},"competency4":{"score":1},"competency5":{"score":1}}`,
		"negative score":      `{"competency1":{"score":-1},"competency2":{"score":1},"competency3":{"score":1},"competency4":{"score":1},"competency5":{"score":1}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseEvaluation(raw)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}
