package extractor

import (
	"fmt"
	"unicode/utf8"

	"docchat/internal/domain"
)

// PlainText treats the file body as a single page of text.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (p *PlainText) Extract(name string, data []byte) ([]domain.TextUnit, error) {
	if !utf8.Valid(data) {
		return nil, &domain.ParseError{Source: name, Err: fmt.Errorf("not valid UTF-8 text")}
	}
	content := sanitize(string(data))
	if content == "" {
		return nil, nil
	}
	return []domain.TextUnit{{Source: name, Page: 1, Text: content}}, nil
}
