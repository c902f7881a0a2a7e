package dataprocessing

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"admissioncli/internal/config"
	apperrors "admissioncli/internal/errors"
	"admissioncli/pkg/contracts/domain"
)

// LoaderOptions controls where the data band sits inside the sheet.
type LoaderOptions struct {
	// HeaderRows leading rows are discarded before any row is read as data.
	HeaderRows int
	// FooterRows trailing rows are discarded unconditionally.
	FooterRows int
	// SheetName selects the sheet; empty means the first one.
	SheetName string
}

// DefaultLoaderOptions returns the layout of the standard admission statement
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		HeaderRows: config.DefaultHeaderRows,
		FooterRows: config.DefaultFooterRows,
	}
}

// Loader parses an admission workbook into the canonical wide table
type Loader struct {
	opts LoaderOptions
}

// NewLoader creates a loader. Negative offsets are treated as zero.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.HeaderRows < 0 {
		opts.HeaderRows = 0
	}
	if opts.FooterRows < 0 {
		opts.FooterRows = 0
	}
	return &Loader{opts: opts}
}

// Load reads one workbook from r. The raw header text is never consulted:
// the 12 canonical names are assigned by position.
func (l *Loader) Load(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheet, err := l.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	if len(rows) <= l.opts.HeaderRows {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("no rows after skipping %d header rows", l.opts.HeaderRows), nil).
			WithContext("sheet", sheet).
			WithContext("rows", len(rows))
	}
	band := rows[l.opts.HeaderRows:]

	width := 0
	for _, row := range band {
		if len(row) > width {
			width = len(row)
		}
	}
	switch {
	case width < len(domain.RawColumns):
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("too few columns: expected %d, found %d", len(domain.RawColumns), width), nil).
			WithContext("sheet", sheet)
	case width > len(domain.RawColumns):
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("too many columns: expected %d, found %d", len(domain.RawColumns), width), nil).
			WithContext("sheet", sheet)
	}

	keep := len(band) - l.opts.FooterRows
	if keep < 0 {
		keep = 0
	}

	table := &domain.Table{
		Columns: append([]string(nil), domain.RawColumns...),
		Rows:    make([][]string, 0, keep),
	}
	for _, row := range band[:keep] {
		table.Rows = append(table.Rows, padRow(row, len(domain.RawColumns)))
	}
	return table, nil
}

func (l *Loader) resolveSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", apperrors.NewParsingError("workbook has no sheets", nil)
	}
	if l.opts.SheetName == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == l.opts.SheetName {
			return name, nil
		}
	}
	return "", apperrors.NewParsingError(fmt.Sprintf("sheet %q not found", l.opts.SheetName), nil).
		WithContext("available", sheets)
}

// padRow copies row and fills the blank trailing cells excelize trims.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
