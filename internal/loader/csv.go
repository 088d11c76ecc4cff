// =============================================================================
// Meter Reading Populator - CSV Loading
// =============================================================================

package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// loadCSV reads a CSV file into a Table.
//
// The reader is deliberately forgiving: retailer exports have inconsistent
// column counts and loosely quoted fields, so the parse accepts variable
// field counts and lazy quotes rather than rejecting the file.
func loadCSV(path string, headerRowOffset int) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(allRows) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("file is empty")}
	}

	t, err := rowsToTable(allRows, headerRowOffset, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return t, nil
}
