package document

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// PDF extracts page text from PDF documents with MuPDF
type PDF struct{}

// ExtractPages returns the text of every page of the PDF
func (PDF) ExtractPages(data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("reading text of page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
