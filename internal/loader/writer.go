// =============================================================================
// Meter Reading Populator - Output Writers
// =============================================================================
//
// This file serializes a populated table back to a byte stream on disk. Row
// order and column set are written exactly as they appear in the table; the
// population pass only ever adds the two output columns.
//
// =============================================================================

package loader

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// WriteCSV writes the table to a CSV file, header row first.
func WriteCSV(t *table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range t.Rows {
		// Pad short rows so every record has the full column set.
		record := make([]string, len(t.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// WriteXLSX writes the table to a single-sheet workbook.
func WriteXLSX(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := writeRow(f, sheet, 1, t.Headers); err != nil {
		return err
	}
	for i, row := range t.Rows {
		record := make([]string, len(t.Headers))
		copy(record, row)
		if err := writeRow(f, sheet, i+2, record); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRow writes one row of string cells starting at column A.
func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
