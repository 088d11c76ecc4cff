package utils_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/meter-reading-populator/pkg/utils"
)

func TestOutputFileName_DefaultPattern(t *testing.T) {
	name := utils.OutputFileName("", "Quarterly Billing", ".csv")
	assert.Equal(t, "Populated_Quarterly_Billing.csv", name)
}

func TestOutputFileName_KeepsExtension(t *testing.T) {
	name := utils.OutputFileName("", "Power Smart Billing", ".xlsx")
	assert.Equal(t, "Populated_Power_Smart_Billing.xlsx", name)
}

func TestOutputFileName_UUIDPlaceholder(t *testing.T) {
	name := utils.OutputFileName("{format}_{uuid}", "Quarterly Billing", ".csv")

	pattern := regexp.MustCompile(`^Quarterly_Billing_[0-9a-f-]{36}\.csv$`)
	assert.Regexp(t, pattern, name)

	// Each call produces a distinct name.
	other := utils.OutputFileName("{format}_{uuid}", "Quarterly Billing", ".csv")
	assert.NotEqual(t, name, other)
}

func TestOutputFileName_TimestampPlaceholder(t *testing.T) {
	name := utils.OutputFileName("run_{timestamp}", "x", ".csv")
	assert.Regexp(t, regexp.MustCompile(`^run_\d{8}_\d{6}\.csv$`), name)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	require.NoError(t, utils.EnsureDirectories(nested, ""))

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
