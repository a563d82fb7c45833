package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestForFileDispatch(t *testing.T) {
	require.IsType(t, &PDF{}, ForFile("report.pdf"))
	require.IsType(t, &PDF{}, ForFile("REPORT.PDF"))
	require.IsType(t, &PDF{}, ForFile("unknown.bin"))
	require.IsType(t, &Markdown{}, ForFile("notes.md"))
	require.IsType(t, &Markdown{}, ForFile("notes.markdown"))
	require.IsType(t, &PlainText{}, ForFile("readme.txt"))
}

func TestPlainTextExtract(t *testing.T) {
	units, err := NewPlainText().Extract("a.txt", []byte("hello world\nsecond line"))
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, "a.txt", units[0].Source)
	require.Equal(t, 1, units[0].Page)
	require.Equal(t, "hello world\nsecond line", units[0].Text)
}

func TestPlainTextRejectsBinaryData(t *testing.T) {
	_, err := NewPlainText().Extract("a.txt", []byte{0xff, 0xfe, 0x00, 0x80})
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "a.txt", parseErr.Source)
}

func TestPlainTextEmptyFile(t *testing.T) {
	units, err := NewPlainText().Extract("a.txt", nil)
	require.NoError(t, err)
	require.Empty(t, units)

	units, err = NewPlainText().Extract("a.txt", []byte("   \n\t  "))
	require.NoError(t, err)
	require.Empty(t, units)
}

func TestMarkdownExtract(t *testing.T) {
	src := []byte("# Title\n\nFirst paragraph.\n\n- item one\n- item two\n\n> quoted\n")
	units, err := NewMarkdown().Extract("notes.md", src)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, 1, units[0].Page)
	require.Contains(t, units[0].Text, "Title")
	require.Contains(t, units[0].Text, "First paragraph.")
	require.Contains(t, units[0].Text, "item one")
	require.Contains(t, units[0].Text, "quoted")
	require.NotContains(t, units[0].Text, "#", "markup must not survive extraction")
}

func TestMarkdownEmptyFile(t *testing.T) {
	units, err := NewMarkdown().Extract("notes.md", nil)
	require.NoError(t, err)
	require.Empty(t, units)
}

func TestPDFRejectsCorruptData(t *testing.T) {
	_, err := NewPDF().Extract("broken.pdf", []byte("this is not a pdf at all"))
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "broken.pdf", parseErr.Source)
}

func TestPDFRejectsTruncatedHeader(t *testing.T) {
	_, err := NewPDF().Extract("broken.pdf", []byte("%PDF-1.7\ngarbage"))
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "ab", sanitize("a\x00b"))
	require.Equal(t, "a\nb\tc", sanitize("a\nb\tc"))
	require.Equal(t, "ab", sanitize("\x01a\x02b\x03"))
	require.Equal(t, "trimmed", sanitize("  trimmed  \n"))
	require.Equal(t, "", sanitize(""))
}
