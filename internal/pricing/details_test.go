package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraughtDetails(t *testing.T) {
	res, err := ComputeDraught(DraughtInput{
		Size:          Size11Gal,
		Basis:         PerContainer,
		Cost:          100,
		TargetGP:      60,
		HalfSurcharge: 0.10,
		Increase:      Increase{Kind: IncreaseFixedPerGallon, Value: 0},
	})
	require.NoError(t, err)

	d := res.Details()
	want := map[string]string{
		"Product":                 "Draught",
		"Unit Size":               "11 Gal",
		"Cost Basis":              "Per Barrel",
		"Current Cost (Ex-VAT)":   "£100.00",
		"Target GP":               "60%",
		"Half Surcharge":          "£0.10",
		"Forecast Increase":       "0 (Fixed £ Gallon)",
		"New Total Cost (Ex-VAT)": "£100.00",
		"Recommended Pint":        "£3.50",
		"Recommended Half":        "£1.90",
		"Current Price":           NotApplicable,
		"Actual GP":               NotApplicable,
		"Annual Profit Leak":      NotApplicable,
	}
	got := d.Map()
	for label, value := range want {
		assert.Equal(t, value, got[label], label)
	}
	assert.Equal(t, "Product", d[0].Label)
}

func TestSpiritsDetails_RealityRows(t *testing.T) {
	res, err := ComputeSpirits(SpiritsInput{Product: "Gin", SizeCl: 70, Cost: 20, TargetGP: 70, CurrentPrice: 3.50, WeeklyVolume: 1})
	require.NoError(t, err)

	d := res.Details()
	name, _ := d.Get("Product")
	assert.Equal(t, "Gin", name)

	size, _ := d.Get("Bottle Size")
	assert.Equal(t, "70cl", size)

	current, _ := d.Get("Current Price")
	assert.Equal(t, "£3.50 (25ml)", current)

	leak, ok := d.Get("Annual Profit Leak")
	require.True(t, ok)
	assert.Equal(t, NotApplicable, leak, "over-priced products never report a negative leak")

	gp, _ := d.Get("Actual GP")
	assert.Equal(t, "75.5%", gp)
}

func TestWineDetails_ListsEveryGlass(t *testing.T) {
	res, err := ComputeWine(WineInput{Cost: 5, TargetGP: 65, Increase: Increase{Kind: IncreaseFixedPerContainer, Value: 0.5}})
	require.NoError(t, err)

	d := res.Details()
	for _, label := range []string{"Recommended Bottle", "Recommended 250ml", "Recommended 175ml", "Recommended 125ml"} {
		_, ok := d.Get(label)
		assert.True(t, ok, label)
		assert.True(t, IsRecommended(label))
	}
	inc, _ := d.Get("Forecast Increase")
	assert.Equal(t, "0.5 (Fixed £ Bottle)", inc)
	assert.False(t, IsRecommended("Target GP"))
}

func TestSoftDrinksAndPostMixDetails(t *testing.T) {
	soft, err := ComputeSoftDrinks(SoftDrinksInput{CaseSize: 24, CaseCost: 12, TargetGP: 70})
	require.NoError(t, err)
	rrp, _ := soft.Details().Get("Recommended Unit")
	assert.Equal(t, "£2.00", rrp)

	mix, err := ComputePostMix(PostMixInput{Product: "Cola", BIBLitres: 10, BIBCost: 60, Ratio: 5, TargetGP: 80})
	require.NoError(t, err)
	m := mix.Details().Map()
	assert.Equal(t, "10L", m["BIB Size"])
	assert.Equal(t, "5:1", m["Dilution Ratio"])
	assert.Equal(t, "£0.30", m["Recommended Dash"])
	assert.Equal(t, "£0.57", m["Cost per Pint (Ex-VAT)"])
}
