package document

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const pageBreak = "\f"

// PlainText reads already-extracted text where pages are separated by form
// feeds, as pdftotext writes them
type PlainText struct{}

// ExtractPages splits the text on form feeds
func (PlainText) ExtractPages(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("text is not valid UTF-8")
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	pages := strings.Split(text, pageBreak)
	// pdftotext terminates the last page with a form feed too
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimPrefix(p, "\n")
	}
	return pages, nil
}
