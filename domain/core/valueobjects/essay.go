package valueobjects

import (
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"
)

// EssayStatus is the processing state of an essay.
type EssayStatus string

const (
	StatusPending    EssayStatus = "pending"
	StatusProcessing EssayStatus = "processing"
	StatusCompleted  EssayStatus = "completed"
	StatusFailed     EssayStatus = "failed"
)

// ParseEssayStatus validates a status string
func ParseEssayStatus(s string) (EssayStatus, error) {
	switch st := EssayStatus(s); st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("invalid essay status %q", s)
}

// IsTerminal reports whether no use-case moves the essay out of this status.
func (s EssayStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s EssayStatus) String() string { return string(s) }

// FileType is the declared kind of an uploaded essay file.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
	FileTypeDOCX  FileType = "docx"
	FileTypeText  FileType = "text"
)

func (f FileType) String() string { return string(f) }

// IsValid reports whether f is one of the extractable file types.
func (f FileType) IsValid() bool {
	switch f {
	case FileTypeImage, FileTypePDF, FileTypeDOCX, FileTypeText:
		return true
	}
	return false
}

// NewEssayID returns a globally unique, time ordered essay identifier.
func NewEssayID() string {
	return ksuid.New().String()
}

// UploadKeyPrefix is the object key prefix every upload of userID lives under.
func UploadKeyPrefix(userID string) string {
	return fmt.Sprintf("essays/%s/", userID)
}

// NewUploadKey builds a fresh object key for a file with the given name.
// The extension is the segment after the last dot, lower cased.
func NewUploadKey(userID, fileName string) string {
	key := UploadKeyPrefix(userID) + ksuid.New().String()
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		key += "." + strings.ToLower(fileName[i+1:])
	}
	return key
}
