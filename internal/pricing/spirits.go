package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// SingleMl is the UK single spirit measure.
const SingleMl = 25.0

// BottleSizesCl are the bottle sizes offered on the spirits form.
var BottleSizesCl = []float64{70, 75, 100, 150}

// ParseBottleSize reads "70cl", "70 cl" or "70" as centilitres.
func ParseBottleSize(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSpace(strings.TrimSuffix(s, "cl"))
	cl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid("size", fmt.Sprintf("%q is not a bottle size", raw))
	}
	if err := checkPositive("size", cl); err != nil {
		return 0, err
	}
	return cl, nil
}

// SpiritsInput prices a bottle of spirits by the 25ml single. Costs are ex-VAT.
type SpiritsInput struct {
	Product  string   `json:"product,omitempty"`
	SizeCl   float64  `json:"sizeCl"`
	Cost     float64  `json:"cost"`
	TargetGP float64  `json:"targetGp"`
	Increase Increase `json:"increase"`
	// CurrentPrice is the price charged for a 25ml single.
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	// WeeklyVolume is in bottles.
	WeeklyVolume float64 `json:"weeklyVolume,omitempty"`
}

func (SpiritsInput) Family() Family { return FamilySpirits }
func (SpiritsInput) isInput()       {}

// SpiritsResult holds single and double prices.
type SpiritsResult struct {
	Input SpiritsInput `json:"input"`

	MlTotal        float64 `json:"mlTotal"`
	NewCost        float64 `json:"newCost"`
	MeasuresPerBtl float64 `json:"measuresPerBottle"`
	Cost25         float64 `json:"cost25"`
	Sale25         float64 `json:"sale25"`
	Sale50         float64 `json:"sale50"`

	Check *RealityCheck `json:"realityCheck,omitempty"`
}

func (r SpiritsResult) Family() Family         { return FamilySpirits }
func (r SpiritsResult) ProductName() string    { return productName(r.Input.Product, "Spirit") }
func (r SpiritsResult) Reality() *RealityCheck { return r.Check }

func (r SpiritsResult) Recommended() []Price {
	return []Price{{Measure: "25ml", Amount: r.Sale25}, {Measure: "50ml", Amount: r.Sale50}}
}

func (in SpiritsInput) validate() error {
	if err := checkPositive("size", in.SizeCl); err != nil {
		return err
	}
	if err := checkNonNegative("cost", in.Cost); err != nil {
		return err
	}
	if err := checkTargetGP("gp", in.TargetGP); err != nil {
		return err
	}
	if err := in.Increase.validate(false); err != nil {
		return err
	}
	return validateOptional(in.CurrentPrice, in.WeeklyVolume)
}

// ComputeSpirits prices a 25ml single; the double is exactly twice the single.
func ComputeSpirits(in SpiritsInput) (SpiritsResult, error) {
	if err := in.validate(); err != nil {
		return SpiritsResult{}, err
	}

	mlTotal := in.SizeCl * 10
	newCost := in.Increase.applyToBottle(in.Cost)
	if err := checkForecast(newCost); err != nil {
		return SpiritsResult{}, err
	}
	cost25 := newCost / mlTotal * SingleMl
	sale25, err := grossPrice(cost25, in.TargetGP)
	if err != nil {
		return SpiritsResult{}, err
	}
	if !isFinite(sale25 * 2) {
		return SpiritsResult{}, errTooLarge
	}
	measures := mlTotal / SingleMl

	return SpiritsResult{
		Input:          in,
		MlTotal:        mlTotal,
		NewCost:        newCost,
		MeasuresPerBtl: measures,
		Cost25:         cost25,
		Sale25:         sale25,
		Sale50:         sale25 * 2,
		Check: checkReality(realityParams{
			measure:           "25ml",
			currentPrice:      in.CurrentPrice,
			weeklyVolume:      in.WeeklyVolume,
			costPerUnit:       cost25,
			recommended:       sale25,
			targetGP:          in.TargetGP,
			unitsPerContainer: measures,
		}),
	}, nil
}
