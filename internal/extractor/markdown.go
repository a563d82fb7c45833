package extractor

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"docchat/internal/domain"
)

// Markdown renders a markdown document down to plain text so it can be
// chunked like any other source. The whole file becomes one page.
type Markdown struct{}

func NewMarkdown() *Markdown { return &Markdown{} }

func (m *Markdown) Extract(name string, data []byte) ([]domain.TextUnit, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var buf strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if textNode, ok := n.(*ast.Text); ok {
				buf.Write(textNode.Segment.Value(data))
				if textNode.HardLineBreak() || textNode.SoftLineBreak() {
					buf.WriteString("\n")
				}
			}
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.Blockquote, *ast.CodeBlock, *ast.FencedCodeBlock:
			buf.WriteString("\n\n")
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, &domain.ParseError{Source: name, Err: err}
	}

	content := sanitize(buf.String())
	if content == "" {
		return nil, nil
	}
	return []domain.TextUnit{{Source: name, Page: 1, Text: content}}, nil
}
