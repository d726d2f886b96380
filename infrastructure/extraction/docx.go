package extraction

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

const docxBody = "word/document.xml"

// extractDOCX reads the text runs of word/document.xml. Paragraph ends and
// breaks become newlines.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("open docx: %s not found", docxBody)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("read docx body: %w", err)
	}
	defer rc.Close()

	text, err := documentText(rc)
	if err != nil {
		return "", err
	}
	if text = normalizeText(text); text == "" {
		return "", ErrNoTextFound
	}
	return text, nil
}

func documentText(r io.Reader) (string, error) {
	var b strings.Builder
	inRun := false

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String(), nil
			}
			return "", fmt.Errorf("parse docx body: %w", z.Err())
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "w:t":
				inRun = true
			case "w:tab":
				b.WriteByte('\t')
			case "w:br", "w:cr":
				b.WriteByte('\n')
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "w:tab":
				b.WriteByte('\t')
			case "w:br", "w:cr":
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "w:t":
				inRun = false
			case "w:p":
				b.WriteByte('\n')
			}
		case html.TextToken:
			if inRun {
				b.Write(z.Text())
			}
		}
	}
}
