package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	apperrors "essay-backend/pkg/errors"
)

const anthropicVersion = "2023-06-01"

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type claudeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClaudeGrader grades essays through the Anthropic Messages API.
type ClaudeGrader struct {
	cfg        ClientConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewClaudeGrader(cfg ClientConfig, logger *zap.Logger) *ClaudeGrader {
	return &ClaudeGrader{
		cfg:        cfg,
		httpClient: newHTTPClient(cfg),
		breaker:    newBreaker("claude", cfg.Breaker, logger),
		logger:     logger,
	}
}

var _ ports.Grader = (*ClaudeGrader)(nil)

func (g *ClaudeGrader) Grade(ctx context.Context, req ports.GradeRequest) (*entities.Evaluation, error) {
	start := time.Now()
	g.logger.Info("Grading essay", zap.String("provider", "claude"), zap.String("model", g.cfg.Model))

	body := claudeRequest{
		Model:     g.cfg.Model,
		MaxTokens: g.cfg.MaxTokens,
		System:    claudeSystemPrompt,
		Messages:  []claudeMessage{{Role: "user", Content: claudeUserPrompt(req.Title, req.Text)}},
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.complete(ctx, body)
	})
	if err != nil {
		g.logger.Error("Claude request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, apperrors.NewExternalError("claude", err)
	}

	text := result.(string)
	ev, err := parseEvaluation(text)
	if err != nil {
		g.logger.Error("Claude returned an invalid evaluation",
			zap.Error(err),
			zap.String("response", truncate(text, 500)),
		)
		return nil, fmt.Errorf("claude: %w", err)
	}

	g.logger.Info("Essay graded",
		zap.String("provider", "claude"),
		zap.Duration("duration", time.Since(start)),
	)
	return ev, nil
}

func (g *ClaudeGrader) complete(ctx context.Context, body claudeRequest) (string, error) {
	headers := map[string]string{
		"x-api-key":         g.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}

	var resp claudeResponse
	if err := postJSON(ctx, g.httpClient, g.cfg.URL, headers, body, &resp, claudeErrorMessage); err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", errors.New("empty response")
}

func claudeErrorMessage(data []byte) string {
	var e claudeErrorResponse
	if json.Unmarshal(data, &e) != nil {
		return ""
	}
	return e.Error.Message
}
