package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestCompute_DispatchesOnFamily(t *testing.T) {
	tests := []struct {
		name   string
		input  Input
		family Family
	}{
		{"draught value", DraughtInput{Size: Size11Gal, Cost: 100, TargetGP: 60}, FamilyDraught},
		{"draught pointer", &DraughtInput{Size: Size9Gal, Cost: 80, TargetGP: 60}, FamilyDraught},
		{"spirits", SpiritsInput{SizeCl: 70, Cost: 20, TargetGP: 70}, FamilySpirits},
		{"wine", WineInput{Cost: 5, TargetGP: 65}, FamilyWine},
		{"soft drinks", SoftDrinksInput{CaseSize: 24, CaseCost: 12, TargetGP: 70}, FamilySoftDrinks},
		{"post mix", PostMixInput{BIBLitres: 10, BIBCost: 60, Ratio: 5, TargetGP: 80}, FamilyPostMix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.family, res.Family())
			assert.Equal(t, tt.family, tt.input.Family())
			assert.NotEmpty(t, res.Recommended())
			assert.NotEmpty(t, res.Details())
		})
	}
}

func TestCompute_ReturnsNoResultOnInvalidInput(t *testing.T) {
	res, err := Compute(WineInput{Cost: 5, TargetGP: 100})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "gp", inErr.Field)
}

func TestCompute_NilInput(t *testing.T) {
	res, err := Compute(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompute_IsIdempotent(t *testing.T) {
	in := DraughtInput{
		Product:       "House Lager",
		Size:          Size11Gal,
		Basis:         PerContainer,
		Cost:          112.40,
		TargetGP:      62,
		HalfSurcharge: 0.10,
		Increase:      Increase{Kind: IncreasePercentage, Value: 4.5},
		ExtraDuty:     3.2,
		CurrentPrice:  4.10,
		WeeklyVolume:  3,
	}

	first, err := Compute(in)
	require.NoError(t, err)
	second, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Details(), second.Details())
}

func TestTargetGP_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		gp      float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"typical", 65, false},
		{"just below hundred", 99.5, false},
		{"hundred", 100, true},
		{"above hundred", 120, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSoftDrinks(SoftDrinksInput{CaseSize: 24, CaseCost: 12, TargetGP: tt.gp})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestZeroGP_PriceIsVATInclusiveCost(t *testing.T) {
	res, err := ComputeSoftDrinks(SoftDrinksInput{CaseSize: 24, CaseCost: 12, TargetGP: 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.UnitCost, tolerance)
	assert.Equal(t, 0.6, res.UnitRRP)
}

func TestParseFamily(t *testing.T) {
	tests := map[string]Family{
		"draught":     FamilyDraught,
		"Spirits":     FamilySpirits,
		" wine ":      FamilyWine,
		"Soft Drinks": FamilySoftDrinks,
		"softdrinks":  FamilySoftDrinks,
		"post-mix":    FamilyPostMix,
		"Post Mix":    FamilyPostMix,
	}
	for raw, want := range tests {
		got, err := ParseFamily(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseFamily("cocktails")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFamilies_ReturnsCopy(t *testing.T) {
	fams := Families()
	require.Len(t, fams, 5)
	fams[0] = "mutated"
	assert.Equal(t, FamilyDraught, Families()[0])
}
