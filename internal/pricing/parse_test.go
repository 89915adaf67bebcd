package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitSize(t *testing.T) {
	tests := map[string]UnitSize{
		"11 Gal": Size11Gal,
		"22gal":  Size22Gal,
		"9 GAL":  Size9Gal,
		"1 Gal":  Size1Gal,
		"30 Ltr": Size30Ltr,
		"50l":    Size50Ltr,
	}
	for raw, want := range tests {
		got, err := ParseUnitSize(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseUnitSize("18 Gal")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseCostBasis(t *testing.T) {
	b, err := ParseCostBasis("Per Barrel")
	require.NoError(t, err)
	assert.Equal(t, PerContainer, b)

	b, err = ParseCostBasis("")
	require.NoError(t, err)
	assert.Equal(t, PerContainer, b)

	b, err = ParseCostBasis("Per Gallon")
	require.NoError(t, err)
	assert.Equal(t, PerGallon, b)

	_, err = ParseCostBasis("per pint")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseIncreaseKind(t *testing.T) {
	tests := []struct {
		raw  string
		want IncreaseKind
	}{
		{"", IncreasePercentage},
		{"Percentage (%)", IncreasePercentage},
		{"Fixed £ Barrel", IncreaseFixedPerContainer},
		{"Fixed £ Bottle", IncreaseFixedPerContainer},
		{"Fixed £ Gallon", IncreaseFixedPerGallon},
		{"fixed_per_gallon", IncreaseFixedPerGallon},
	}
	for _, tt := range tests {
		got, err := ParseIncreaseKind(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, err := ParseIncreaseKind("Fixed £ Pint")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseBottleSize(t *testing.T) {
	for raw, want := range map[string]float64{"70cl": 70, "75 cl": 75, "100": 100, "150CL": 150} {
		got, err := ParseBottleSize(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "large", "0cl", "-70cl"} {
		_, err := ParseBottleSize(raw)
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}
