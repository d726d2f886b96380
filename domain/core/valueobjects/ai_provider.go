package valueobjects

import "fmt"

// AIProvider selects the grading backend for an essay.
type AIProvider string

const (
	ProviderClaude AIProvider = "claude"
	ProviderOpenAI AIProvider = "openai"
)

// DefaultAIProvider is used when a submission does not choose one.
const DefaultAIProvider = ProviderClaude

// ParseAIProvider validates a provider selector; empty means the default.
func ParseAIProvider(s string) (AIProvider, error) {
	switch p := AIProvider(s); p {
	case "":
		return DefaultAIProvider, nil
	case ProviderClaude, ProviderOpenAI:
		return p, nil
	}
	return "", fmt.Errorf("invalid AI provider %q", s)
}

func (p AIProvider) String() string { return string(p) }
