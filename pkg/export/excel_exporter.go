package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders Dataset records into an xlsx workbook.
type ExcelExporter struct {
	SheetName string
}

// NewExcelExporter builds an Excel exporter writing to a single sheet.
func NewExcelExporter(sheetName string) *ExcelExporter {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &ExcelExporter{SheetName: sheetName}
}

// Render produces xlsx encoded bytes for the dataset. The header row is
// always written, even for an empty dataset.
func (e *ExcelExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != e.SheetName {
		if err := f.SetSheetName(sheet, e.SheetName); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = e.SheetName
	}

	writeRow := func(rowIdx int, cells []string) error {
		values := make([]interface{}, len(cells))
		for i, cell := range cells {
			values[i] = cell
		}
		addr, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, addr, &values)
	}

	if err := writeRow(1, data.Headers); err != nil {
		return nil, fmt.Errorf("write xlsx headers: %w", err)
	}
	for i, row := range data.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
