package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"retail-customers/internal/domain"
	"retail-customers/internal/logger"
	customersvc "retail-customers/internal/service/customer"
)

// CustomerCreator registers one customer.
type CustomerCreator interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
}

// RowError describes a CSV row rejected by a domain rule.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Report summarises an import run.
type Report struct {
	Imported int
	Rejected []RowError
}

var requiredColumns = []string{"firstName", "lastName", "email", "phoneNumber", "street", "city", "postalCode", "country"}

// CSVImporter reads customer rows from CSV and registers them through the service.
type CSVImporter struct {
	reader  *csv.Reader
	creator CustomerCreator
	logger  *zap.Logger
}

func NewCSVImporter(r io.Reader, creator CustomerCreator, log *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:  csvr,
		creator: creator,
		logger:  logger.OrNop(log),
	}
}

// Run imports every row. Rows that break a domain rule are reported and
// skipped; any other error stops the run.
func (i *CSVImporter) Run(ctx context.Context) (Report, error) {
	var report Report

	headers, err := i.reader.Read()
	if err != nil {
		return report, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return report, fmt.Errorf("missing column %q", col)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := i.reader.FieldPos(0)

		in, err := parseRow(record, index)
		if err == nil {
			_, err = i.creator.Create(ctx, in)
		}
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				report.Rejected = append(report.Rejected, RowError{Line: line, Err: err})
				i.logger.Warn("row rejected", zap.Int("line", line), zap.Error(err))
				continue
			}
			return report, fmt.Errorf("line %d: %w", line, err)
		}
		report.Imported++
	}

	return report, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (customersvc.CreateInput, error) {
	in := customersvc.CreateInput{
		FirstName:   pick(record, index, "firstName"),
		LastName:    pick(record, index, "lastName"),
		Email:       pick(record, index, "email"),
		PhoneNumber: pick(record, index, "phoneNumber"),
		Address: customersvc.AddressInput{
			Street:     pick(record, index, "street"),
			City:       pick(record, index, "city"),
			PostalCode: pick(record, index, "postalCode"),
			Country:    pick(record, index, "country"),
		},
	}
	if raw := pick(record, index, "availableCredit"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, domain.ErrInvalidAmount
		}
		in.AvailableCredit = &amount
	}
	return in, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
