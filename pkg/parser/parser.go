package parser

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("invalid or empty document")
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extract dispatches on content type (with a filename-extension fallback)
// and returns the document's plain text. Unsupported types and documents
// that yield no text fail here, before any session exists.
func Extract(contentType, filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch {
	case contentType == "application/pdf" || strings.HasSuffix(filename, ".pdf"):
		text, err = extractPDF(data)
	case contentType == docxContentType || strings.HasSuffix(filename, ".docx"):
		text, err = extractDOCX(data)
	case contentType == "text/plain" || strings.HasSuffix(filename, ".txt"):
		text = string(data)
	default:
		return "", ErrUnsupportedType
	}

	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
