package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	apperrors "essay-backend/pkg/errors"
)

const openAITemperature = 0.3

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiResponseFormat struct {
	Type string `json:"type"`
}

type oaiChatRequest struct {
	Model          string            `json:"model"`
	Messages       []oaiMessage      `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat oaiResponseFormat `json:"response_format"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message      oaiMessage `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
}

type oaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenAIGrader grades essays through the OpenAI chat completions API in
// JSON mode.
type OpenAIGrader struct {
	cfg        ClientConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewOpenAIGrader(cfg ClientConfig, logger *zap.Logger) *OpenAIGrader {
	return &OpenAIGrader{
		cfg:        cfg,
		httpClient: newHTTPClient(cfg),
		breaker:    newBreaker("openai", cfg.Breaker, logger),
		logger:     logger,
	}
}

var _ ports.Grader = (*OpenAIGrader)(nil)

func (g *OpenAIGrader) Grade(ctx context.Context, req ports.GradeRequest) (*entities.Evaluation, error) {
	start := time.Now()
	g.logger.Info("Grading essay", zap.String("provider", "openai"), zap.String("model", g.cfg.Model))

	body := oaiChatRequest{
		Model: g.cfg.Model,
		Messages: []oaiMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: openAIUserPrompt(req.Title, req.Text)},
		},
		Temperature:    openAITemperature,
		MaxTokens:      g.cfg.MaxTokens,
		ResponseFormat: oaiResponseFormat{Type: "json_object"},
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.complete(ctx, body)
	})
	if err != nil {
		g.logger.Error("OpenAI request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, apperrors.NewExternalError("openai", err)
	}

	text := result.(string)
	ev, err := parseEvaluation(text)
	if err != nil {
		g.logger.Error("OpenAI returned an invalid evaluation",
			zap.Error(err),
			zap.String("response", truncate(text, 500)),
		)
		return nil, fmt.Errorf("openai: %w", err)
	}

	g.logger.Info("Essay graded",
		zap.String("provider", "openai"),
		zap.Duration("duration", time.Since(start)),
	)
	return ev, nil
}

func (g *OpenAIGrader) complete(ctx context.Context, body oaiChatRequest) (string, error) {
	headers := map[string]string{"Authorization": "Bearer " + g.cfg.APIKey}

	var resp oaiChatResponse
	if err := postJSON(ctx, g.httpClient, g.cfg.URL, headers, body, &resp, openAIErrorMessage); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

func openAIErrorMessage(data []byte) string {
	var e oaiErrorResponse
	if json.Unmarshal(data, &e) != nil {
		return ""
	}
	return e.Error.Message
}
