package extract

import (
	"path/filepath"
	"strings"

	"github.com/aethermind/rag-backend/internal/apperrors"
)

// Text pulls plain text out of an uploaded file. Only .txt and .md are
// supported; PDF parsing is deliberately out of scope and fails with an
// explicit message.
func Text(filename, contentType string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch {
	case ct == "text/plain", ct == "text/markdown", ext == ".txt", ext == ".md":
		return strings.ToValidUTF8(string(data), ""), nil
	case ct == "application/pdf", ext == ".pdf":
		return "", apperrors.UnsupportedFormat("PDF processing requires additional setup. Please use .txt files for now.")
	default:
		return "", apperrors.UnsupportedFormat("Unsupported file type. Please use .txt or .md files.")
	}
}
