package ai

import (
	"fmt"

	"essay-backend/application/ports"
	"essay-backend/domain/core/valueobjects"
	apperrors "essay-backend/pkg/errors"
)

// Registry maps each provider to its grader.
type Registry struct {
	graders map[valueobjects.AIProvider]ports.Grader
}

// NewRegistry registers the two graders. A nil grader leaves its provider
// unavailable.
func NewRegistry(claude *ClaudeGrader, openai *OpenAIGrader) *Registry {
	r := &Registry{graders: make(map[valueobjects.AIProvider]ports.Grader, 2)}
	if claude != nil {
		r.graders[valueobjects.ProviderClaude] = claude
	}
	if openai != nil {
		r.graders[valueobjects.ProviderOpenAI] = openai
	}
	return r
}

var _ ports.GraderRegistry = (*Registry)(nil)

func (r *Registry) Grader(provider valueobjects.AIProvider) (ports.Grader, error) {
	g, ok := r.graders[provider]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("AI provider %q is not available", provider))
	}
	return g, nil
}
