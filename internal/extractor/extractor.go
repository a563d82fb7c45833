package extractor

import (
	"path/filepath"
	"strings"

	"docchat/internal/domain"
)

// ForFile picks an extractor by file extension. PDF is the primary format;
// markdown and plain text are accepted the same way a text corpus would be.
func ForFile(name string) domain.Extractor {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return NewMarkdown()
	case ".txt", ".text":
		return NewPlainText()
	default:
		return NewPDF()
	}
}

// sanitize removes NUL bytes and non-printing controls that some PDF
// extractors emit, keeping common whitespace.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}
