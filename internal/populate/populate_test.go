package populate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/meter-reading-populator/internal/populate"
	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// buildQuarterlyIndex indexes the given billing rows with the quarterly
// format. Headers: NMI, PEAK_KWH, PEAK_KWH.1, Availability charge Quantity.
func buildQuarterlyIndex(t *testing.T, rows [][]string) populate.Index {
	t.Helper()
	billing := table.New(
		[]string{"NMI", "PEAK_KWH", "PEAK_KWH.1", "Availability charge Quantity"},
		rows,
	)
	index, err := populate.BuildIndex(billing, quarterly(t))
	require.NoError(t, err)
	return index
}

func newTarget(meterNos ...string) *table.Table {
	rows := make([][]string, len(meterNos))
	for i, m := range meterNos {
		rows[i] = []string{m, "site"}
	}
	return table.New([]string{"Meter No.", "Site Name"}, rows)
}

func TestPopulate_MissingMeterColumn(t *testing.T) {
	target := table.New([]string{"Identifier"}, [][]string{{"123P"}})
	before := target.Clone()

	_, err := populate.Populate(target, populate.Index{})

	var missing *populate.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, populate.TableTarget, missing.TableKind)
	assert.Equal(t, "Meter No.", missing.Column)

	// The failed pass must not have touched the table.
	assert.Equal(t, before.Headers, target.Headers)
	assert.Equal(t, before.Rows, target.Rows)
}

func TestPopulate_ReadingRangeMatch(t *testing.T) {
	// Billing NMI stored as a float, target meter carries the P suffix.
	index := buildQuarterlyIndex(t, [][]string{{"1234567890.0", "100", "500", ""}})
	target := newTarget("1234567890P")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, table.Cell{Value: "100", Present: true}, target.Cell(0, "Reading From"))
	assert.Equal(t, table.Cell{Value: "500", Present: true}, target.Cell(0, "Reading To"))
}

func TestPopulate_QuantityMatch(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"1234567890", "", "", "42"}})
	target := newTarget("1234567890A")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, table.Cell{Value: "0", Present: true}, target.Cell(0, "Reading From"))
	assert.Equal(t, table.Cell{Value: "42", Present: true}, target.Cell(0, "Reading To"))
}

func TestPopulate_MatchedRowWithAllValuesAbsent(t *testing.T) {
	// A lookup hit whose data has no present value writes nothing and does
	// not count.
	index := buildQuarterlyIndex(t, [][]string{{"999", "", "", ""}})
	target := newTarget("999P", "999A")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.False(t, target.Cell(0, "Reading From").Present)
	assert.False(t, target.Cell(0, "Reading To").Present)
	assert.False(t, target.Cell(1, "Reading From").Present)
	assert.False(t, target.Cell(1, "Reading To").Present)
}

func TestPopulate_TooShortIdentifierSkipped(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"X", "1", "2", ""}})
	target := newTarget("X")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.False(t, target.Cell(0, "Reading From").Present)
	assert.False(t, target.Cell(0, "Reading To").Present)
}

func TestPopulate_UnknownSuffixIsNoOp(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"555", "1", "2", "3"}})
	target := newTarget("555Z")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.False(t, target.Cell(0, "Reading From").Present)
	assert.False(t, target.Cell(0, "Reading To").Present)
}

func TestPopulate_UnknownBaseSkipped(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"555", "1", "2", ""}})
	target := newTarget("444P")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPopulate_PartialRangeWritesOneFieldAndCountsOnce(t *testing.T) {
	// Only the start reading is billed. The end field keeps whatever value
	// it held before the pass.
	index := buildQuarterlyIndex(t, [][]string{{"555", "123", "", ""}})

	target := table.New(
		[]string{"Meter No.", "Reading From", "Reading To"},
		[][]string{{"555P", "old-from", "old-to"}},
	)

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, "123", target.Cell(0, "Reading From").Value)
	assert.Equal(t, "old-to", target.Cell(0, "Reading To").Value)
}

func TestPopulate_QuantityAbsentLeavesPriorValues(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"555", "", "", ""}})

	target := table.New(
		[]string{"Meter No.", "Reading From", "Reading To"},
		[][]string{{"555A", "keep-from", "keep-to"}},
	)

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Equal(t, "keep-from", target.Cell(0, "Reading From").Value)
	assert.Equal(t, "keep-to", target.Cell(0, "Reading To").Value)
}

func TestPopulate_EmptyBillingIdentifierNeverIndexed(t *testing.T) {
	// A blank billing NMI row is not indexed at all, so no target row can
	// resolve to it.
	index := buildQuarterlyIndex(t, [][]string{{"", "100", "500", ""}})
	target := newTarget("P")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, index)
}

func TestPopulate_EnsuresOutputColumns(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"555", "1", "2", ""}})
	target := newTarget("555P")

	_, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.True(t, target.HasColumn("Reading From"))
	assert.True(t, target.HasColumn("Reading To"))
	// Pre-existing columns are untouched.
	assert.Equal(t, "site", target.Cell(0, "Site Name").Value)
}

func TestPopulate_OrderAndRowCountPreserved(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{{"555", "1", "2", ""}})
	target := newTarget("555P", "444P", "555Z", "X")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, 4, target.RowCount())
	assert.Equal(t, "555P", target.Cell(0, "Meter No.").Value)
	assert.Equal(t, "444P", target.Cell(1, "Meter No.").Value)
	assert.Equal(t, "555Z", target.Cell(2, "Meter No.").Value)
	assert.Equal(t, "X", target.Cell(3, "Meter No.").Value)
}

func TestPopulate_MatchCountAdditivity(t *testing.T) {
	index := buildQuarterlyIndex(t, [][]string{
		{"100", "10", "20", ""},
		{"200", "", "", "5"},
		{"300", "", "", ""},
	})
	target := newTarget("100P", "200A", "300P", "300A", "999P")

	count, err := populate.Populate(target, index)
	require.NoError(t, err)

	// Exactly the rows that received at least one write are counted.
	written := 0
	for i := 0; i < target.RowCount(); i++ {
		if target.Cell(i, "Reading From").Present || target.Cell(i, "Reading To").Present {
			written++
		}
	}
	assert.Equal(t, written, count)
	assert.Equal(t, 2, count)
}
