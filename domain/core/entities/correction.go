package entities

import (
	"fmt"
	"time"
)

const (
	CompetencyCount    = 5
	MaxCompetencyScore = 200
	MaxTotalScore      = CompetencyCount * MaxCompetencyScore
)

// CompetencyScore is the grade for one rubric competency.
type CompetencyScore struct {
	Score        int      `json:"score" dynamodbav:"score"`
	Feedback     string   `json:"feedback" dynamodbav:"feedback"`
	Strengths    []string `json:"strengths" dynamodbav:"strengths"`
	Improvements []string `json:"improvements" dynamodbav:"improvements"`
}

// Evaluation is what a grader returns before it becomes a Correction.
type Evaluation struct {
	Competencies    [CompetencyCount]CompetencyScore
	OverallFeedback string
}

// Correction is the stored grading result of a completed essay.
type Correction struct {
	Competency1      CompetencyScore `json:"competency1" dynamodbav:"competency1"`
	Competency2      CompetencyScore `json:"competency2" dynamodbav:"competency2"`
	Competency3      CompetencyScore `json:"competency3" dynamodbav:"competency3"`
	Competency4      CompetencyScore `json:"competency4" dynamodbav:"competency4"`
	Competency5      CompetencyScore `json:"competency5" dynamodbav:"competency5"`
	TotalScore       int             `json:"totalScore" dynamodbav:"totalScore"`
	OverallFeedback  string          `json:"overallFeedback" dynamodbav:"overallFeedback"`
	ProcessedAt      time.Time       `json:"processedAt" dynamodbav:"processedAt"`
	ProcessingTimeMs int64           `json:"processingTimeMs" dynamodbav:"processingTimeMs"`
}

// NewCorrection validates every competency score and derives the total
// from them.
func NewCorrection(ev Evaluation, processedAt time.Time, latency time.Duration) (*Correction, error) {
	total := 0
	for i, c := range ev.Competencies {
		if c.Score < 0 || c.Score > MaxCompetencyScore {
			return nil, fmt.Errorf("competency%d score %d out of range [0,%d]", i+1, c.Score, MaxCompetencyScore)
		}
		total += c.Score
	}

	return &Correction{
		Competency1:      normalize(ev.Competencies[0]),
		Competency2:      normalize(ev.Competencies[1]),
		Competency3:      normalize(ev.Competencies[2]),
		Competency4:      normalize(ev.Competencies[3]),
		Competency5:      normalize(ev.Competencies[4]),
		TotalScore:       total,
		OverallFeedback:  ev.OverallFeedback,
		ProcessedAt:      processedAt.UTC(),
		ProcessingTimeMs: latency.Milliseconds(),
	}, nil
}

// Scores returns the five competency scores in order.
func (c *Correction) Scores() [CompetencyCount]int {
	return [CompetencyCount]int{
		c.Competency1.Score, c.Competency2.Score, c.Competency3.Score,
		c.Competency4.Score, c.Competency5.Score,
	}
}

func normalize(c CompetencyScore) CompetencyScore {
	if c.Strengths == nil {
		c.Strengths = []string{}
	}
	if c.Improvements == nil {
		c.Improvements = []string{}
	}
	return c
}
