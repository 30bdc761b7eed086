package ledger

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/invoice-tracker/internal/document"
	"github.com/zombor/invoice-tracker/internal/invoice"
	"github.com/zombor/invoice-tracker/internal/report"
)

// Extractor turns an uploaded document into page texts
type Extractor interface {
	Extract(data []byte, contentType string) ([]string, error)
}

// IDGenerator generates unique IDs for records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

// Service handles invoice uploads and the stored records
type Service struct {
	db          DB
	extractor   Extractor
	processor   *invoice.Processor
	storage     Storage
	metrics     *Metrics
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with uuid IDs and the wall clock
func NewService(db DB, extractor Extractor, processor *invoice.Processor, storage Storage, metrics *Metrics) *Service {
	return NewServiceWithDeps(db, extractor, processor, storage, metrics, uuidGenerator{}, wallClock{})
}

// NewServiceWithDeps creates a Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor Extractor, processor *invoice.Processor, storage Storage, metrics *Metrics, idGen IDGenerator, timeSrc TimeSource) *Service {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Service{
		db:          db,
		extractor:   extractor,
		processor:   processor,
		storage:     storage,
		metrics:     metrics,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// sanitizeFilename strips special characters and truncates the base name
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = unsafeChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(spaceRuns.ReplaceAllString(base, " "))

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "invoice"
	}
	return base + ext
}

// ProcessInvoice stores an uploaded document, runs the engine over its
// pages and saves the resulting record
func (s *Service) ProcessInvoice(filename string, data []byte, contentType string) (*Record, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		s.metrics.failed("storage")
		return nil, fmt.Errorf("saving file: %w", err)
	}

	pages, err := s.extractor.Extract(data, contentType)
	if err != nil {
		slog.Error("Failed to extract invoice text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(savedPath)
		s.metrics.failed("extract")
		return nil, fmt.Errorf("extracting invoice text: %w", err)
	}

	inv := invoice.New(pages)
	result, err := s.processor.Process(inv)
	if err != nil {
		s.storage.Delete(savedPath)
		s.metrics.failed("process")
		return nil, fmt.Errorf("processing invoice: %w", err)
	}

	record := &Record{
		ID:          id,
		Filename:    savedPath,
		Source:      document.SourceName(filename),
		ContentType: document.NormalizeContentType(contentType),
		PageCount:   inv.PageCount(),
		Invoice:     *inv,
		Discrepancy: result.Discrepancy,
		Balanced:    result.Balanced(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveRecord(record); err != nil {
		s.storage.Delete(savedPath)
		s.metrics.failed("database")
		return nil, fmt.Errorf("saving invoice to database: %w", err)
	}

	s.metrics.observe(record)
	slog.Info("Processed invoice",
		"id", record.ID,
		"source", record.Source,
		"order_number", inv.OrderNumber,
		"total", invoice.FormatAmount(inv.Total),
		"discrepancy", invoice.FormatAmount(result.Discrepancy),
	)
	return record, nil
}

// GetInvoice retrieves a record by ID
func (s *Service) GetInvoice(id string) (*Record, error) {
	record, err := s.db.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return record, nil
}

// ListInvoices returns all records
func (s *Service) ListInvoices() ([]*Record, error) {
	records, err := s.db.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return records, nil
}

// DeleteInvoice removes a record and its stored document
func (s *Service) DeleteInvoice(id string) error {
	record, err := s.db.GetRecord(id)
	if err != nil {
		return fmt.Errorf("getting invoice for deletion: %w", err)
	}

	if err := s.storage.Delete(record.Filename); err != nil {
		slog.Warn("Failed to delete file", "filename", record.Filename, "error", err)
	}

	if err := s.db.DeleteRecord(id); err != nil {
		return fmt.Errorf("deleting invoice from database: %w", err)
	}
	return nil
}

// GetInvoiceFile returns the stored document of a record and its content type
func (s *Service) GetInvoiceFile(id string) ([]byte, string, error) {
	record, err := s.db.GetRecord(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice: %w", err)
	}

	data, err := s.storage.Get(record.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice file: %w", err)
	}
	return data, record.ContentType, nil
}

// ExportCSV renders every record as CSV
func (s *Service) ExportCSV() ([]byte, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, entries); err != nil {
		return nil, fmt.Errorf("exporting csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders every record as an XLSX workbook
func (s *Service) ExportXLSX() ([]byte, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, entries); err != nil {
		return nil, fmt.Errorf("exporting xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) entries() ([]report.Item, error) {
	records, err := s.ListInvoices()
	if err != nil {
		return nil, err
	}
	entries := make([]report.Item, 0, len(records))
	for _, r := range records {
		inv := r.Invoice
		entries = append(entries, report.Item{Source: r.Source, Invoice: &inv})
	}
	return entries, nil
}

// Metrics returns the service's collectors
func (s *Service) Metrics() *Metrics {
	return s.metrics
}
