// Package config loads the lookup files the invoice engine needs: sales rep
// codes, payment terms and cost classification criteria.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zombor/invoice-tracker/internal/invoice"
)

// commentPrefix marks lines to skip in the flat config files
const commentPrefix = "*"

// Paths locates the three config files
type Paths struct {
	SalesReps    string
	PaymentTerms string
	CostCriteria string
}

// Load reads all config files and builds the engine configuration
func Load(paths Paths) (*invoice.Config, error) {
	reps, err := LoadSalesReps(paths.SalesReps)
	if err != nil {
		return nil, err
	}
	terms, err := LoadPaymentTerms(paths.PaymentTerms)
	if err != nil {
		return nil, err
	}
	criteria, err := LoadCostCriteria(paths.CostCriteria)
	if err != nil {
		return nil, err
	}
	return invoice.NewConfig(reps, terms, criteria), nil
}

// LoadSalesReps reads a CODE=Name file
func LoadSalesReps(path string) ([]invoice.SalesRep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sales reps file: %w", err)
	}
	defer f.Close()

	reps, err := ParseSalesReps(f)
	if err != nil {
		return nil, fmt.Errorf("reading sales reps file %s: %w", path, err)
	}
	return reps, nil
}

// ParseSalesReps reads CODE=Name entries in file order
func ParseSalesReps(r io.Reader) ([]invoice.SalesRep, error) {
	var reps []invoice.SalesRep
	err := eachEntry(r, func(n int, line string) error {
		code, name, found := strings.Cut(line, "=")
		if !found || code == "" {
			return fmt.Errorf("line %d: expected CODE=Name, got %q", n, line)
		}
		reps = append(reps, invoice.SalesRep{Code: code, Name: name})
		return nil
	})
	return reps, err
}

// LoadPaymentTerms reads a file with one payment term per line
func LoadPaymentTerms(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening payment terms file: %w", err)
	}
	defer f.Close()

	terms, err := ParsePaymentTerms(f)
	if err != nil {
		return nil, fmt.Errorf("reading payment terms file %s: %w", path, err)
	}
	return terms, nil
}

// ParsePaymentTerms reads payment terms in file order, which is also their
// matching priority
func ParsePaymentTerms(r io.Reader) ([]string, error) {
	var terms []string
	err := eachEntry(r, func(_ int, line string) error {
		terms = append(terms, line)
		return nil
	})
	return terms, err
}

// LoadCostCriteria reads the YAML cost criteria file
func LoadCostCriteria(path string) (invoice.CostCriteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return invoice.CostCriteria{}, fmt.Errorf("reading cost criteria file: %w", err)
	}
	criteria, err := ParseCostCriteria(data)
	if err != nil {
		return invoice.CostCriteria{}, fmt.Errorf("parsing cost criteria file %s: %w", path, err)
	}
	return criteria, nil
}

// ParseCostCriteria decodes labor_criteria, labor_exclusions and
// shipping_criteria lists
func ParseCostCriteria(data []byte) (invoice.CostCriteria, error) {
	var criteria invoice.CostCriteria
	if err := yaml.Unmarshal(data, &criteria); err != nil {
		return invoice.CostCriteria{}, fmt.Errorf("unmarshaling yaml: %w", err)
	}
	return criteria, nil
}

// eachEntry calls fn for every non-blank, non-comment line
func eachEntry(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return sc.Err()
}
