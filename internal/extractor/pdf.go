package extractor

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
)

// PDF extracts page-ordered text from PDF bytes.
type PDF struct{}

func NewPDF() *PDF { return &PDF{} }

// Extract returns one TextUnit per page that carries any text. A document
// whose pages are all empty (e.g. scanned images) yields no units and no
// error; the caller reports it as zero chunks.
func (p *PDF) Extract(name string, data []byte) (units []domain.TextUnit, err error) {
	// The pdf package panics on some malformed files; fold that into the
	// normal per-document error path.
	defer func() {
		if r := recover(); r != nil {
			units = nil
			err = &domain.ParseError{Source: name, Err: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ParseError{Source: name, Err: fmt.Errorf("open pdf: %w", err)}
	}

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &domain.ParseError{Source: name, Err: fmt.Errorf("extract page %d: %w", i, err)}
		}
		text = sanitize(text)
		if text == "" {
			continue
		}
		units = append(units, domain.TextUnit{Source: name, Page: i, Text: text})
	}
	return units, nil
}
