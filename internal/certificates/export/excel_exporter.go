package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes registry rows to an XLSX workbook
type ExcelExporter struct {
	file    *excelize.File
	options ExcelOptions
	nextRow int
}

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	SheetName     string `json:"sheet_name"`
	IncludeHeader bool   `json:"include_header"`
	FreezeHeader  bool   `json:"freeze_header"`
	DateFormat    string `json:"date_format"`
	HeaderFill    string `json:"header_fill"`
	HeaderFont    string `json:"header_font"`
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:     "Certificates",
		IncludeHeader: true,
		FreezeHeader:  true,
		DateFormat:    "2006-01-02 15:04:05",
		HeaderFill:    "182D51",
		HeaderFont:    "FFFFFF",
	}
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", options.SheetName)

	return &ExcelExporter{
		file:    file,
		options: options,
		nextRow: 1,
	}
}

// WriteHeader writes the styled header row
func (e *ExcelExporter) WriteHeader(columns []string) error {
	if !e.options.IncludeHeader {
		return nil
	}

	styleID, err := e.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: e.options.HeaderFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{e.options.HeaderFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := e.file.SetCellValue(e.options.SheetName, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		e.file.SetCellStyle(e.options.SheetName, cell, cell, styleID)
	}

	if e.options.FreezeHeader {
		e.file.SetPanes(e.options.SheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}

	e.nextRow = 2
	return nil
}

// WriteRow writes a single data row
func (e *ExcelExporter) WriteRow(row []interface{}) error {
	for i, val := range row {
		cell, _ := excelize.CoordinatesToCellName(i+1, e.nextRow)
		if t, ok := val.(time.Time); ok {
			val = t.Format(e.options.DateFormat)
		}
		if err := e.file.SetCellValue(e.options.SheetName, cell, val); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
	}
	e.nextRow++
	return nil
}

// WriteTo serializes the workbook to the writer
func (e *ExcelExporter) WriteTo(w io.Writer) error {
	if err := e.file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return e.file.Close()
}
