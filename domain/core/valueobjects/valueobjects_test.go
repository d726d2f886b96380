package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAIProvider(t *testing.T) {
	p, err := ParseAIProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, p)

	p, err = ParseAIProvider("openai")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p)

	_, err = ParseAIProvider("gemini")
	assert.Error(t, err)
}

func TestEssayStatus(t *testing.T) {
	_, err := ParseEssayStatus("archived")
	assert.Error(t, err)

	st, err := ParseEssayStatus("completed")
	require.NoError(t, err)
	assert.True(t, st.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
}

func TestNewUploadKey(t *testing.T) {
	key := NewUploadKey("user-1", "My Essay.final.PDF")
	assert.True(t, strings.HasPrefix(key, "essays/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	noExt := NewUploadKey("user-1", "scan")
	assert.NotContains(t, strings.TrimPrefix(noExt, "essays/user-1/"), ".")

	assert.NotEqual(t, NewUploadKey("u", "a.png"), NewUploadKey("u", "a.png"))
}

func TestNewEssayIDIsOrdered(t *testing.T) {
	a := NewEssayID()
	assert.Len(t, a, 27)
}

func TestFileTypeIsValid(t *testing.T) {
	for _, ft := range []FileType{FileTypeImage, FileTypePDF, FileTypeDOCX, FileTypeText} {
		assert.True(t, ft.IsValid(), ft)
	}
	assert.False(t, FileType("pptx").IsValid())
	assert.False(t, FileType("").IsValid())
}
