package populate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/meter-reading-populator/internal/populate"
)

func TestNormalize_StripsFloatArtifact(t *testing.T) {
	assert.Equal(t, "1234567890", populate.Normalize("1234567890.0"))
	assert.Equal(t, "1234567890", populate.Normalize("1234567890"))
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "4001234567", populate.Normalize("  4001234567  "))
	assert.Equal(t, "4001234567", populate.Normalize("\t4001234567.0\n"))
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", populate.Normalize(""))
	assert.Equal(t, "", populate.Normalize("   "))
}

func TestNormalize_LeavesNonArtifactValuesAlone(t *testing.T) {
	// ".00" is not the float artifact; only ".0" suffixes are stripped.
	assert.Equal(t, "10.00", populate.Normalize("10.00"))
	assert.Equal(t, "METER-7A", populate.Normalize("METER-7A"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"1234567890.0",
		"  555  ",
		"1.0.0",
		"",
		"abc.0",
		"10.00",
	}
	for _, in := range inputs {
		once := populate.Normalize(in)
		assert.Equal(t, once, populate.Normalize(once), "input %q", in)
	}
}
