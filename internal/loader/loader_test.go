package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/meter-reading-populator/internal/loader"
	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

func writeCSVFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_CSVWithHeaderOffset(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "billing.csv",
		"Some Banner Row\n"+
			"NMI,Availability\n"+
			"123,5\n")

	tbl, err := loader.Load(path, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"NMI", "Availability"}, tbl.Headers)
	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, "123", tbl.Cell(0, "NMI").Value)
}

func TestLoad_CSVDuplicateHeadersDisambiguated(t *testing.T) {
	// Billing exports repeat a header for the start/end reading pair; the
	// repeat occurrences pick up ".1", ".2" suffixes so the format rules
	// can address them.
	path := writeCSVFile(t, t.TempDir(), "billing.csv",
		"NMI,PEAK_KWH,PEAK_KWH,PEAK_KWH\n"+
			"9,1,2,3\n")

	tbl, err := loader.Load(path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"NMI", "PEAK_KWH", "PEAK_KWH.1", "PEAK_KWH.2"}, tbl.Headers)
	assert.Equal(t, "2", tbl.Cell(0, "PEAK_KWH.1").Value)
}

func TestLoad_CSVBlankHeadersNamedByPosition(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "data.csv",
		"NMI,,Value\n"+
			"1,x,y\n")

	tbl, err := loader.Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"NMI", "Column_2", "Value"}, tbl.Headers)
}

func TestLoad_CSVSkipsEmptyRows(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "data.csv",
		"NMI,Value\n"+
			"1,a\n"+
			",\n"+
			"2,b\n")

	tbl, err := loader.Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "data.txt", "NMI\n1\n")

	_, err := loader.Load(path, 0)

	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "unsupported file type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.csv"), 0)

	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_HeaderOffsetOutOfRange(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "short.csv", "only row\n")

	_, err := loader.Load(path, 5)

	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "out of range")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tbl := table.New(
		[]string{"Meter No.", "Reading From", "Reading To"},
		[][]string{
			{"123P", "100", "500"},
			{"999A"}, // Short row is padded on write.
		},
	)

	path := filepath.Join(dir, "out.csv")
	require.NoError(t, loader.WriteCSV(tbl, path))

	loaded, err := loader.Load(path, 0)
	require.NoError(t, err)

	assert.Equal(t, tbl.Headers, loaded.Headers)
	require.Equal(t, 2, loaded.RowCount())
	assert.Equal(t, "500", loaded.Cell(0, "Reading To").Value)
	assert.False(t, loaded.Cell(1, "Reading From").Present)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tbl := table.New(
		[]string{"NMI", "PEAK_KWH", "PEAK_KWH.1"},
		[][]string{{"1234567890", "100", "500"}},
	)

	path := filepath.Join(dir, "out.xlsx")
	require.NoError(t, loader.WriteXLSX(tbl, path))

	loaded, err := loader.Load(path, 0)
	require.NoError(t, err)

	assert.Equal(t, tbl.Headers, loaded.Headers)
	require.Equal(t, 1, loaded.RowCount())
	assert.Equal(t, "100", loaded.Cell(0, "PEAK_KWH").Value)
	assert.Equal(t, "500", loaded.Cell(0, "PEAK_KWH.1").Value)
}

func TestSheetNames_AndLoadSheet(t *testing.T) {
	dir := t.TempDir()
	tbl := table.New([]string{"NMI", "Availability"}, [][]string{{"42", "7"}})

	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, loader.WriteXLSX(tbl, path))

	sheets, err := loader.SheetNames(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	loaded, err := loader.LoadSheet(path, sheets[0], 0)
	require.NoError(t, err)
	assert.Equal(t, "42", loaded.Cell(0, "NMI").Value)
	assert.Equal(t, sheets[0], loaded.SourceSheet)
}

func TestSheetNames_RejectsCSV(t *testing.T) {
	path := writeCSVFile(t, t.TempDir(), "data.csv", "NMI\n1\n")

	_, err := loader.SheetNames(path)
	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
}
