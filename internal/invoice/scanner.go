package invoice

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	tableStartMarker = "Ordered Total Price"
	tableEndMarker   = "Total:Subtotal"
	subtotalMarker   = "subtotal"
)

// Phase is where the scanner stands in the purchase table
type Phase int

const (
	SeekingTable Phase = iota
	ScanningRows
	EndReached
)

func (p Phase) String() string {
	switch p {
	case SeekingTable:
		return "seeking_table"
	case ScanningRows:
		return "scanning_rows"
	case EndReached:
		return "end_reached"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ScanState carries the line-number sequence across pages of one invoice
type ScanState struct {
	// NextLine is the row number the table must continue with
	NextLine int
	Phase    Phase
	// gapReported is the awaited row a numbering gap was last reported for
	gapReported int
}

// NewScanState returns the state for the start of an invoice
func NewScanState() ScanState {
	return ScanState{NextLine: 1, Phase: SeekingTable}
}

// Scanner walks the purchase table of each page, booking one charge per
// numbered row
type Scanner struct {
	costs      CostExtractor
	classifier *Classifier
	logger     *slog.Logger
}

// NewScanner creates a Scanner. A nil logger means slog.Default().
func NewScanner(costs CostExtractor, classifier *Classifier, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		costs:      costs,
		classifier: classifier,
		logger:     logger,
	}
}

// ScanPage processes one page of text and returns the state to hand to the
// next page. Once the end of the table has been reached, further pages are
// ignored.
func (s *Scanner) ScanPage(state ScanState, page string, inv *Invoice) ScanState {
	if state.Phase == EndReached {
		return state
	}

	page = strings.ReplaceAll(page, "\r\n", "\n")
	if strings.Contains(page, tableStartMarker) {
		state.Phase = ScanningRows
	}
	text := trimToTable(page)

	// a line led by the following row number may be a wrapped description;
	// it only counts as a gap if the awaited row never shows up
	suspect := 0
	lines := strings.Split(text, "\n")
	offset := 0
	for i, line := range lines {
		if strings.HasPrefix(line, rowPrefix(state.NextLine)) {
			s.applyRow(inv, state.NextLine, line, rowSpan(text[offset:], state.NextLine))
			state.Phase = ScanningRows
			state.NextLine++
			suspect = 0
		} else if suspect == 0 && strings.HasPrefix(line, rowPrefix(state.NextLine+1)) {
			suspect = state.NextLine
		}

		if strings.Contains(line, tableEndMarker) {
			s.reportGap(&state, suspect, inv)
			s.reconcile(inv, lines[i:])
			state.Phase = EndReached
			return state
		}
		offset += len(line) + 1
	}
	s.reportGap(&state, suspect, inv)
	return state
}

// reportGap warns once per awaited row when a later row number was seen
// but the awaited row still has not been
func (s *Scanner) reportGap(state *ScanState, suspect int, inv *Invoice) {
	if suspect == 0 || suspect != state.NextLine || state.gapReported == suspect {
		return
	}
	msg := fmt.Sprintf("line number sequence stalled: found row %d while row %d was never seen", suspect+1, suspect)
	s.logger.Warn("Possible gap in line numbering", "expected", suspect, "found", suspect+1)
	inv.warn(msg)
	state.gapReported = suspect
}

// applyRow books the charge of one row, if it carries one
func (s *Scanner) applyRow(inv *Invoice, lineNum int, line, span string) {
	if strings.Contains(line, subtotalMarker) {
		s.logger.Debug("Skipping table subtotal row", "line", lineNum)
		return
	}

	amount, unit, ok := s.costs.Extract(span)
	if !ok {
		s.logger.Debug("No cost found for line item", "line", lineNum)
		return
	}

	category := s.classifier.Classify(line)
	inv.apply(category, amount)
	s.logger.Debug("Line item classified",
		"line", lineNum,
		"category", string(category),
		"unit", unit,
		"amount", FormatAmount(amount),
	)
}

func rowPrefix(n int) string {
	return strconv.Itoa(n) + " "
}

// trimToTable drops everything before the table header. Continuation pages
// without the header are kept whole.
func trimToTable(text string) string {
	if i := strings.Index(text, tableStartMarker); i >= 0 {
		return text[i:]
	}
	return text
}

// rowSpan returns the text of row n, given text starting at its first line.
// The span ends before row n+1 or the end-of-table marker, whichever comes
// first.
func rowSpan(text string, n int) string {
	end := len(text)
	if i := strings.Index(text, "\n"+rowPrefix(n+1)); i >= 0 {
		end = i
	}
	if i := strings.Index(text, tableEndMarker); i >= 0 && i < end {
		end = i
	}
	return text[:end]
}
