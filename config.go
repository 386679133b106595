package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultThresholdDays = 90
	defaultSalesSheet    = "Sales History"
	defaultCatalogSheet  = "Customer Master"
	defaultCatalogMap    = "A=customer,B=city,C=email,D=country,E=region,F=phone"
)

var defaultDateColumns = []string{
	"order_date",
	"requested_ship_date",
	"due_date",
	"shipped_date",
	"invoice_date",
	"payment_date",
	"actual_payment_date",
}

// Semantic catalog fields, in the canonical output order.
const (
	fieldCustomer = "customer"
	fieldCity     = "city"
	fieldEmail    = "email"
	fieldCountry  = "country"
	fieldRegion   = "region"
	fieldPhone    = "phone"
)

var catalogFieldOrder = []string{fieldCity, fieldEmail, fieldCountry, fieldRegion, fieldPhone}

// CatalogColumn maps one workbook column letter to a semantic catalog field.
type CatalogColumn struct {
	Letter string
	Field  string
}

// Config is the full, immutable configuration for one pipeline run. It is
// built once in main and threaded through every stage; nothing reads
// process-wide state after startup.
type Config struct {
	ThresholdDays  int
	CustomerColumn string
	AgentColumn    string
	DateColumns    []string

	// Transaction source: exactly one of CSVPath, WorkbookPath, DriveFileID.
	CSVPath         string
	WorkbookPath    string
	DriveFileID     string
	CredentialsPath string
	SalesSheet      string

	// Catalog sources, tried in order: same-workbook sheet, then external
	// file, local or Drive-hosted.
	CatalogSheet       string
	CatalogMapping     []CatalogColumn
	CatalogFile        string
	CatalogDriveFileID string
	CatalogFileSheet   string

	// AsOf pins the current-date snapshot for the run; zero means "now".
	AsOf time.Time
}

func defaultConfig() Config {
	mapping, _ := parseCatalogMapping(defaultCatalogMap)
	return Config{
		ThresholdDays:    defaultThresholdDays,
		CustomerColumn:   "customer_id",
		AgentColumn:      "salesperson",
		DateColumns:      append([]string{}, defaultDateColumns...),
		SalesSheet:       defaultSalesSheet,
		CatalogSheet:     defaultCatalogSheet,
		CatalogMapping:   mapping,
		CatalogFileSheet: "Catalog",
	}
}

func (c Config) validate() error {
	if c.ThresholdDays <= 0 {
		return errors.New("threshold days must be positive")
	}
	if strings.TrimSpace(c.CustomerColumn) == "" {
		return errors.New("customer column is required")
	}
	if len(c.DateColumns) == 0 {
		return errors.New("at least one candidate date column is required")
	}
	sources := 0
	for _, s := range []string{c.CSVPath, c.WorkbookPath, c.DriveFileID} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources == 0 {
		return errors.New("a transaction source is required (--csv, --workbook or --drive-file)")
	}
	if sources > 1 {
		return errors.New("specify only one transaction source")
	}
	if c.DriveFileID != "" && strings.TrimSpace(c.CredentialsPath) == "" {
		return errors.New("--credentials is required with --drive-file")
	}
	if c.CatalogFile != "" && c.CatalogDriveFileID != "" {
		return errors.New("specify only one external catalog source")
	}
	if c.CatalogDriveFileID != "" && strings.TrimSpace(c.CredentialsPath) == "" {
		return errors.New("--credentials is required with --catalog-drive-file")
	}
	return nil
}

// asOfDate is the single date snapshot used for every recency computation in
// a run, as a UTC calendar date.
func (c Config) asOfDate() time.Time {
	if !c.AsOf.IsZero() {
		return dateOnly(c.AsOf)
	}
	return dateOnly(time.Now().UTC())
}

// parseCatalogMapping parses the positional catalog layout, e.g.
// "C=customer,A=city,B=email". The letters address workbook columns the way
// a spreadsheet does; the master sheet has no reliable headers, so the
// layout is configuration rather than discovery.
func parseCatalogMapping(value string) ([]CatalogColumn, error) {
	parts := strings.Split(value, ",")
	mapping := make([]CatalogColumn, 0, len(parts))
	seenLetter := map[string]bool{}
	seenField := map[string]bool{}
	hasKey := false
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		letter, field, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid catalog column %q, want LETTER=field", part)
		}
		letter = strings.ToUpper(strings.TrimSpace(letter))
		field = strings.ToLower(strings.TrimSpace(field))
		if _, err := columnLetterIndex(letter); err != nil {
			return nil, err
		}
		if !knownCatalogField(field) {
			return nil, fmt.Errorf("unknown catalog field %q", field)
		}
		if seenLetter[letter] {
			return nil, fmt.Errorf("duplicate catalog column %s", letter)
		}
		if seenField[field] {
			return nil, fmt.Errorf("duplicate catalog field %s", field)
		}
		seenLetter[letter] = true
		seenField[field] = true
		if field == fieldCustomer {
			hasKey = true
		}
		mapping = append(mapping, CatalogColumn{Letter: letter, Field: field})
	}
	if len(mapping) == 0 {
		return nil, errors.New("catalog column mapping is empty")
	}
	if !hasKey {
		return nil, errors.New("catalog column mapping needs a customer column")
	}
	return mapping, nil
}

func knownCatalogField(field string) bool {
	if field == fieldCustomer {
		return true
	}
	for _, known := range catalogFieldOrder {
		if field == known {
			return true
		}
	}
	return false
}

// columnLetterIndex converts a spreadsheet column letter ("A", "AB") to a
// zero-based index.
func columnLetterIndex(letter string) (int, error) {
	if letter == "" {
		return 0, errors.New("empty column letter")
	}
	index := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", letter)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, nil
}

func splitColumns(value string) []string {
	parts := strings.Split(value, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}
