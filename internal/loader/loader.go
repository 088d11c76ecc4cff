// =============================================================================
// Meter Reading Populator - Table Loader
// =============================================================================
//
// This package is the external loader collaborator for the matching engine.
// It turns uploaded billing and readings files into table.Table values and
// serializes the populated result back out. The engine itself performs no
// file I/O.
//
// RESPONSIBILITIES:
//   - Detect CSV vs. spreadsheet format from the declared file name.
//   - Apply the billing format's header row offset when parsing.
//   - Disambiguate duplicate column headers the way the source spreadsheets
//     expect ("PEAK_KWH", "PEAK_KWH.1", ...).
//   - Surface any parse failure as a LoadError before the engine runs.
//   - Discover sheet names for batch operation over multi-sheet workbooks.
//
// =============================================================================

package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// =============================================================================
// LOAD ERROR
// =============================================================================

// LoadError wraps any failure to read or parse an input file. It is always
// produced before a population pass begins.
type LoadError struct {
	// Path is the file that failed to load.
	Path string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// isSpreadsheet reports whether the file name declares an Excel workbook.
func isSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a tabular input file into a Table.
//
// PARAMETERS:
//   - path: The input file. The extension decides the parser: .csv is read
//     with the CSV parser, .xlsx/.xlsm with the spreadsheet parser.
//   - headerRowOffset: The 0-based row index at which column headers begin.
//     Rows above the offset are discarded; data rows follow the header row.
//
// RETURNS:
//   - The parsed table.
//   - A LoadError on any read or parse failure, or for an unsupported
//     extension.
func Load(path string, headerRowOffset int) (*table.Table, error) {
	switch {
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		return loadCSV(path, headerRowOffset)
	case isSpreadsheet(path):
		return loadXLSX(path, "", headerRowOffset)
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
}

// LoadSheet reads a specific sheet of a workbook into a Table. Used for
// batch operation where one workbook carries one sheet per billing format.
func LoadSheet(path, sheet string, headerRowOffset int) (*table.Table, error) {
	if !isSpreadsheet(path) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("sheet selection requires a workbook, got %q", filepath.Ext(path))}
	}
	return loadXLSX(path, sheet, headerRowOffset)
}

// =============================================================================
// HEADER HANDLING
// =============================================================================

// cleanHeaders trims header values, names blank headers by position, and
// disambiguates duplicates by appending ".1", ".2", ... to repeat
// occurrences. The billing layouts rely on that suffixing to address the
// second of two identically-labeled reading columns (e.g. "PEAK_KWH.1").
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, header := range raw {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}

		count := seen[header]
		seen[header] = count + 1
		if count > 0 {
			header = fmt.Sprintf("%s.%d", header, count)
		}

		headers[i] = header
	}

	return headers
}

// rowsToTable converts raw rows into a Table, applying the header row offset
// and dropping rows that are entirely empty.
func rowsToTable(allRows [][]string, headerRowOffset int, path string) (*table.Table, error) {
	if headerRowOffset < 0 {
		return nil, fmt.Errorf("header row offset must be non-negative, got %d", headerRowOffset)
	}
	if headerRowOffset >= len(allRows) {
		return nil, fmt.Errorf("file has %d row(s), header row offset %d is out of range", len(allRows), headerRowOffset)
	}

	headers := cleanHeaders(allRows[headerRowOffset])

	var rows [][]string
	for _, row := range allRows[headerRowOffset+1:] {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}

	t := table.New(headers, rows)
	t.SourceFile = path
	return t, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
