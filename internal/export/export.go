// Package export encodes product lists as CSV or XLSX documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/model"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet that holds the rows in XLSX exports.
const SheetName = "Inventory"

// TimeLayout formats the Added On column.
const TimeLayout = "2006-01-02 15:04:05"

// Header is the first row of every export.
var Header = []string{"ID", "Name", "Category", "Quantity", "Price", "Added On"}

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", apperrors.ErrValidation, s)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the default download name, e.g. inventory_export_20240131_094500.csv.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("inventory_export_%s.%s", now.Format("20060102_150405"), f)
}

// Exporter writes product rows. Spreadsheet output can be switched off, in
// which case XLSX requests fail with ErrExportDisabled.
type Exporter struct {
	spreadsheetEnabled bool
}

// NewExporter creates an exporter.
func NewExporter(spreadsheetEnabled bool) *Exporter {
	return &Exporter{spreadsheetEnabled: spreadsheetEnabled}
}

// Supports returns ErrExportDisabled for formats that are switched off.
func (e *Exporter) Supports(f Format) error {
	if f == FormatXLSX && !e.spreadsheetEnabled {
		return apperrors.ErrExportDisabled
	}
	return nil
}

// Write encodes products to w.
func (e *Exporter) Write(w io.Writer, f Format, products []model.Product) error {
	if err := e.Supports(f); err != nil {
		return err
	}
	switch f {
	case FormatCSV:
		return writeCSV(w, products)
	case FormatXLSX:
		return writeXLSX(w, products)
	default:
		return fmt.Errorf("%w: unknown export format %q", apperrors.ErrValidation, f)
	}
}

// WriteFile encodes products into a new file at path. A partially written
// file is removed on failure.
func (e *Exporter) WriteFile(path string, f Format, products []model.Product) (err error) {
	if err := e.Supports(f); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", apperrors.ErrExportFailure, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return e.Write(file, f, products)
}

func record(p model.Product) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Name,
		p.Category,
		strconv.Itoa(p.Quantity),
		p.Price.StringFixed(2),
		p.AddedOn.Format(TimeLayout),
	}
}

func writeCSV(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}
	for _, p := range products {
		if err := cw.Write(record(p)); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}
	return nil
}

func writeXLSX(w io.Writer, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
		}
		row := []interface{}{
			p.ID,
			p.Name,
			p.Category,
			p.Quantity,
			p.Price.InexactFloat64(),
			p.AddedOn.Format(TimeLayout),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 24); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}
	if err := f.SetColWidth(SheetName, "F", "F", 20); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailure, err)
	}
	return nil
}
