// =============================================================================
// Meter Reading Populator - XLSX Loading
// =============================================================================

package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// loadXLSX reads one sheet of a workbook into a Table. An empty sheet name
// selects the first sheet.
func loadXLSX(path, sheet string, headerRowOffset int) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
		}
	}

	allRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}
	if len(allRows) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("sheet %q is empty", sheet)}
	}

	t, err := rowsToTable(allRows, headerRowOffset, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	t.SourceSheet = sheet
	return t, nil
}

// SheetNames returns the sheet names of a workbook in workbook order.
// Batch operation uses this to pair sheets with billing formats.
func SheetNames(path string) ([]string, error) {
	if !isSpreadsheet(path) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("sheet discovery requires a workbook")}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return f.GetSheetList(), nil
}
