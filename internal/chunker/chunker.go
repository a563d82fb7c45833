package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"docchat/internal/domain"
)

// pageSeparator joins page texts into one logical stream. Page boundaries
// stay visible to the splitter as paragraph breaks.
const pageSeparator = "\n\n"

// RecursiveChunker splits a document's text into overlapping windows of at
// most Size runes, stepping Size-Overlap runes at a time. A window that
// does not end the document is trimmed back to the nearest natural break:
// paragraph first, then sentence, then word, then a raw cut.
type RecursiveChunker struct {
	size    int
	overlap int
}

// New validates 0 <= overlap < size and returns a chunker.
func New(size, overlap int) (*RecursiveChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must satisfy 0 <= overlap < size, got size=%d overlap=%d", size, overlap)
	}
	return &RecursiveChunker{size: size, overlap: overlap}, nil
}

// Chunk concatenates the document's page texts and splits the stream.
// All units must belong to one source document, ordered by page. Ordering
// of the returned chunks is position order and is deterministic.
func (c *RecursiveChunker) Chunk(docID string, units []domain.TextUnit) ([]domain.Chunk, error) {
	if len(units) == 0 {
		return nil, nil
	}
	source := units[0].Source

	var stream []rune
	var pageStarts []int // rune offset where each unit begins
	pages := make([]int, len(units))
	for i, u := range units {
		if u.Source != source {
			return nil, fmt.Errorf("chunk: mixed sources %q and %q in one document", source, u.Source)
		}
		if i > 0 {
			stream = append(stream, []rune(pageSeparator)...)
		}
		pageStarts = append(pageStarts, len(stream))
		pages[i] = u.Page
		stream = append(stream, []rune(u.Text)...)
	}

	total := len(stream)
	if total == 0 {
		return nil, nil
	}

	pageAt := func(off int) int {
		page := pages[0]
		for i, start := range pageStarts {
			if off < start {
				break
			}
			page = pages[i]
		}
		return page
	}

	emit := func(chunks []domain.Chunk, start, end, idx int) []domain.Chunk {
		text := string(stream[start:end])
		return append(chunks, domain.Chunk{
			ID:         chunkID(source, idx, text),
			DocumentID: docID,
			Source:     source,
			FirstPage:  pageAt(start),
			LastPage:   pageAt(end - 1),
			Index:      idx,
			Text:       text,
		})
	}

	// A document that fits in one window yields exactly one chunk.
	if total <= c.size {
		return emit(nil, 0, total, 0), nil
	}

	var chunks []domain.Chunk
	start := 0
	for idx := 0; ; idx++ {
		end := start + c.size
		if end >= total {
			end = total
		} else {
			end = c.naturalBreak(stream, start, end)
		}
		chunks = emit(chunks, start, end, idx)
		next := end - c.overlap
		if next <= start || next >= total {
			break
		}
		start = next
	}
	return chunks, nil
}

// naturalBreak trims the window end back to the best break point found in
// its second half, so chunks do not cut through a paragraph, sentence or
// word when adjacent context exists. Returns the raw end when nothing
// suitable is in range.
func (c *RecursiveChunker) naturalBreak(stream []rune, start, end int) int {
	floor := start + c.size/2
	if f := start + c.overlap + 1; f > floor {
		floor = f
	}
	if floor >= end {
		return end
	}

	for j := end - 1; j > floor; j-- {
		if stream[j] == '\n' && stream[j-1] == '\n' {
			return j + 1
		}
	}
	for j := end - 1; j > floor; j-- {
		if isSentenceEnd(stream[j]) && (j+1 >= len(stream) || isSpace(stream[j+1])) {
			return j + 1
		}
	}
	for j := end - 1; j > floor; j-- {
		if isSpace(stream[j]) {
			return j + 1
		}
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// chunkID derives a stable identifier from the chunk's source, position and
// content, so the same document always yields the same IDs.
func chunkID(source string, idx int, text string) string {
	h := sha256.Sum256([]byte(source + "\x00" + strconv.Itoa(idx) + "\x00" + text))
	return hex.EncodeToString(h[:8])
}
