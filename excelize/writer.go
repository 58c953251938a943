// Package excelize serializes report tables into xlsx workbooks using
// github.com/xuri/excelize/v2.
package excelize

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Akira-YMZK/generator"
)

// Ensure Writer implements generator.ReportWriter at compile time.
var _ generator.ReportWriter = (*Writer)(nil)

// Writer turns report tables into an xlsx byte stream, one sheet per table.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write serializes the tables to w. The first table replaces the workbook's
// default sheet so the output has exactly one sheet per table.
func (wr *Writer) Write(w io.Writer, tables []generator.ReportTable) error {
	if len(tables) == 0 {
		return generator.Errorf(generator.EINVALID, "at least one report table required")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.Name); err != nil {
				return generator.Errorf(generator.EINTERNAL, "failed to name sheet %q: %v", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return generator.Errorf(generator.EINTERNAL, "failed to add sheet %q: %v", table.Name, err)
		}

		if err := setRow(f, table.Name, 1, table.Header); err != nil {
			return err
		}
		for r, row := range table.Rows {
			if err := setRow(f, table.Name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return generator.Errorf(generator.EINTERNAL, "failed to write workbook: %v", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	anchor, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return generator.Errorf(generator.EINTERNAL, "invalid row %d: %v", row, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, anchor, &values); err != nil {
		return generator.Errorf(generator.EINTERNAL, "failed to write row %d on %q: %v", row, sheet, err)
	}
	return nil
}
