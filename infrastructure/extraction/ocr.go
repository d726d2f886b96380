package extraction

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	// MaxOCRBytes is the synchronous Textract document size limit.
	MaxOCRBytes = 5 * 1024 * 1024
	// MaxOCRDimension bounds the longer image side after downscaling.
	MaxOCRDimension = 4096

	jpegQuality = 90
)

// TextractAPI is the subset of the Textract client in use.
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// OCR reads handwritten or printed essay photos through Textract.
type OCR struct {
	client TextractAPI
	logger *zap.Logger
}

func NewOCR(client TextractAPI, logger *zap.Logger) *OCR {
	return &OCR{client: client, logger: logger}
}

// DetectText returns the LINE blocks of the image joined by newlines.
func (o *OCR) DetectText(ctx context.Context, data []byte) (string, error) {
	fitted, err := fitImage(data, MaxOCRBytes, MaxOCRDimension)
	if err != nil {
		return "", err
	}
	if len(fitted) != len(data) {
		o.logger.Debug("Downscaled image for OCR",
			zap.Int("original_bytes", len(data)),
			zap.Int("bytes", len(fitted)),
		)
	}

	out, err := o.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: fitted},
	})
	if err != nil {
		return "", fmt.Errorf("textract detect document text: %w", err)
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if line := strings.TrimSpace(*block.Text); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", ErrNoTextFound
	}
	return strings.Join(lines, "\n"), nil
}

// fitImage re-encodes images above limit as JPEG, scaled so neither side
// exceeds maxDim. Smaller inputs are returned untouched.
func fitImage(data []byte, limit, maxDim int) ([]byte, error) {
	if len(data) <= limit {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxDim || h > maxDim {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if buf.Len() > limit {
		return nil, fmt.Errorf("%w: %d bytes after downscaling", ErrImageTooLarge, buf.Len())
	}
	return buf.Bytes(), nil
}
