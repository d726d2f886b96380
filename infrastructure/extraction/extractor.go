// Package extraction turns uploaded essay files into plain text.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/valueobjects"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoTextFound         = errors.New("no text found in file")
	ErrImageTooLarge       = errors.New("image exceeds the OCR size limit")
)

// ObjectReader fetches stored file bytes.
type ObjectReader interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// Extractor dispatches on the declared file type.
type Extractor struct {
	objects ObjectReader
	ocr     *OCR
	logger  *zap.Logger
}

// NewExtractor creates a new extractor. ocr may be nil when image uploads
// are not accepted.
func NewExtractor(objects ObjectReader, ocr *OCR, logger *zap.Logger) *Extractor {
	return &Extractor{objects: objects, ocr: ocr, logger: logger}
}

var _ ports.TextExtractor = (*Extractor)(nil)

func (e *Extractor) ExtractText(ctx context.Context, fileKey string, fileType valueobjects.FileType) (string, error) {
	if !fileType.IsValid() || (fileType == valueobjects.FileTypeImage && e.ocr == nil) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}

	start := time.Now()
	data, err := e.objects.GetObject(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", fileKey, err)
	}

	var text string
	switch fileType {
	case valueobjects.FileTypeImage:
		text, err = e.ocr.DetectText(ctx, data)
	case valueobjects.FileTypePDF:
		text, err = extractPDF(data)
	case valueobjects.FileTypeDOCX:
		text, err = extractDOCX(data)
	case valueobjects.FileTypeText:
		text, err = extractPlain(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract %s text from %s: %w", fileType, fileKey, err)
	}

	e.logger.Info("Extracted essay text",
		zap.String("file_key", fileKey),
		zap.String("file_type", string(fileType)),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len([]rune(text))),
		zap.Duration("duration", time.Since(start)),
	)
	return text, nil
}

func extractPlain(data []byte) (string, error) {
	text := normalizeText(string(data))
	if text == "" {
		return "", ErrNoTextFound
	}
	return text, nil
}

// normalizeText drops NULs and invalid UTF-8, collapses runs of blanks
// inside each line and keeps at most one empty line between paragraphs.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", " ")
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(line)
		blank = false
	}
	return b.String()
}
