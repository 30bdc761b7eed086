package document

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

var salesOrderName = regexp.MustCompile(`SO-(.+)\.pdf`)

// Extractor turns a document into the plain text of each of its pages
type Extractor interface {
	// ExtractPages returns one string per page, in page order
	ExtractPages(data []byte) ([]string, error)
}

// Router picks an Extractor by content type
type Router struct {
	extractors map[string]Extractor
}

// NewRouter creates a Router that handles PDFs and plain text
func NewRouter() *Router {
	return &Router{
		extractors: map[string]Extractor{
			ContentTypePDF:  PDF{},
			ContentTypeText: PlainText{},
		},
	}
}

// Register adds or replaces the extractor for a content type
func (r *Router) Register(contentType string, e Extractor) {
	r.extractors[NormalizeContentType(contentType)] = e
}

// Supports reports whether a content type can be extracted
func (r *Router) Supports(contentType string) bool {
	_, ok := r.extractors[NormalizeContentType(contentType)]
	return ok
}

// Extract returns the page texts of data
func (r *Router) Extract(data []byte, contentType string) ([]string, error) {
	ct := NormalizeContentType(contentType)
	e, ok := r.extractors[ct]
	if !ok {
		return nil, fmt.Errorf("unsupported document type %q. Supported types: PDF, plain text", contentType)
	}
	pages, err := e.ExtractPages(data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s pages: %w", ct, err)
	}
	return pages, nil
}

// NormalizeContentType lowercases a MIME type and drops its parameters
func NormalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// ContentTypeFor guesses the content type from a file name
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".txt", ".text":
		return ContentTypeText
	default:
		return "application/octet-stream"
	}
}

// SourceName is the name an invoice document is reported under: the
// SO-xxxx.pdf sales order name when the file has one, else its base name.
func SourceName(filename string) string {
	base := filepath.Base(filename)
	if m := salesOrderName.FindString(base); m != "" {
		return m
	}
	return base
}
