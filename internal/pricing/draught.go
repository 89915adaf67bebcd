package pricing

import (
	"fmt"
	"strings"
)

const (
	// LitresPerGallon is the imperial gallon.
	LitresPerGallon = 4.546
	// PintMl is the imperial pint.
	PintMl = 568.0
)

// UnitSize is a keg or cask size as offered on the draught form.
type UnitSize string

const (
	Size11Gal UnitSize = "11 Gal"
	Size22Gal UnitSize = "22 Gal"
	Size9Gal  UnitSize = "9 Gal"
	Size1Gal  UnitSize = "1 Gal"
	Size30Ltr UnitSize = "30 Ltr"
	Size50Ltr UnitSize = "50 Ltr"
)

var unitGallons = map[UnitSize]float64{
	Size11Gal: 11,
	Size22Gal: 22,
	Size9Gal:  9,
	Size1Gal:  1,
	Size30Ltr: 30 / LitresPerGallon,
	Size50Ltr: 50 / LitresPerGallon,
}

// UnitSizes lists the draught container sizes in form order.
func UnitSizes() []UnitSize {
	return []UnitSize{Size11Gal, Size22Gal, Size9Gal, Size1Gal, Size30Ltr, Size50Ltr}
}

// ParseUnitSize accepts "11 Gal", "11gal", "30 Ltr", "30l" and so on.
func ParseUnitSize(raw string) (UnitSize, error) {
	key := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	for _, s := range UnitSizes() {
		canon := strings.ToLower(strings.ReplaceAll(string(s), " ", ""))
		if key == canon || key == strings.TrimSuffix(canon, "tr") {
			return s, nil
		}
	}
	return "", invalid("size", fmt.Sprintf("%q is not a draught unit size", raw))
}

// Gallons returns the container volume in imperial gallons.
func (s UnitSize) Gallons() (float64, bool) {
	g, ok := unitGallons[s]
	return g, ok
}

// CostBasis says whether the invoice cost covers the whole container or one gallon.
type CostBasis string

const (
	PerContainer CostBasis = "per_container"
	PerGallon    CostBasis = "per_gallon"
)

// ParseCostBasis accepts the canonical tag or the form labels "Per Barrel"
// and "Per Gallon". Blank means per container.
func ParseCostBasis(raw string) (CostBasis, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "per_container", "per barrel", "per container", "per keg":
		return PerContainer, nil
	case "per_gallon", "per gallon":
		return PerGallon, nil
	}
	return "", invalid("basis", fmt.Sprintf("%q is not a cost basis", raw))
}

// DraughtInput prices a keg or cask. Costs are ex-VAT.
type DraughtInput struct {
	Product       string    `json:"product,omitempty"`
	Size          UnitSize  `json:"size" jsonschema:"enum=11 Gal,enum=22 Gal,enum=9 Gal,enum=1 Gal,enum=30 Ltr,enum=50 Ltr"`
	Basis         CostBasis `json:"basis" jsonschema:"enum=per_container,enum=per_gallon"`
	Cost          float64   `json:"cost"`
	TargetGP      float64   `json:"targetGp"`
	HalfSurcharge float64   `json:"halfSurcharge"`
	Increase      Increase  `json:"increase"`
	// ExtraDuty follows the cost basis: per container or per gallon.
	ExtraDuty    float64 `json:"extraDuty,omitempty"`
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	// WeeklyVolume is in containers.
	WeeklyVolume float64 `json:"weeklyVolume,omitempty"`
}

func (DraughtInput) Family() Family { return FamilyDraught }
func (DraughtInput) isInput()       {}

// DraughtResult holds the recommended pint and half prices.
type DraughtResult struct {
	Input DraughtInput `json:"input"`

	Gallons        float64 `json:"gallons"`
	Pints          float64 `json:"pints"`
	TotalCost      float64 `json:"totalCost"`
	IncreaseAmount float64 `json:"increaseAmount"`
	DutyTotal      float64 `json:"dutyTotal"`
	ForecastTotal  float64 `json:"forecastTotal"`
	CostPerPint    float64 `json:"costPerPint"`
	Pint           float64 `json:"pint"`
	Half           float64 `json:"half"`

	Check *RealityCheck `json:"realityCheck,omitempty"`
}

func (r DraughtResult) Family() Family         { return FamilyDraught }
func (r DraughtResult) ProductName() string    { return productName(r.Input.Product, "Draught") }
func (r DraughtResult) Reality() *RealityCheck { return r.Check }

func (r DraughtResult) Recommended() []Price {
	return []Price{{Measure: "Pint", Amount: r.Pint}, {Measure: "Half", Amount: r.Half}}
}

func (in DraughtInput) validate() (float64, error) {
	gallons, ok := in.Size.Gallons()
	if !ok {
		return 0, invalid("size", fmt.Sprintf("%q is not a draught unit size", in.Size))
	}
	if in.Basis != "" && in.Basis != PerContainer && in.Basis != PerGallon {
		return 0, invalid("basis", fmt.Sprintf("%q is not a cost basis", in.Basis))
	}
	if err := checkNonNegative("cost", in.Cost); err != nil {
		return 0, err
	}
	if err := checkTargetGP("gp", in.TargetGP); err != nil {
		return 0, err
	}
	if err := checkNonNegative("half_surcharge", in.HalfSurcharge); err != nil {
		return 0, err
	}
	if err := in.Increase.validate(true); err != nil {
		return 0, err
	}
	if err := checkNonNegative("duty", in.ExtraDuty); err != nil {
		return 0, err
	}
	if err := validateOptional(in.CurrentPrice, in.WeeklyVolume); err != nil {
		return 0, err
	}
	return gallons, nil
}

// ComputeDraught prices a pint and a half from a container cost.
func ComputeDraught(in DraughtInput) (DraughtResult, error) {
	gallons, err := in.validate()
	if err != nil {
		return DraughtResult{}, err
	}

	pints := gallons * LitresPerGallon * 1000 / PintMl

	totalCost := in.Cost
	dutyTotal := in.ExtraDuty
	if in.Basis == PerGallon {
		totalCost = in.Cost * gallons
		dutyTotal = in.ExtraDuty * gallons
	}

	var increaseAmount float64
	switch in.Increase.Kind {
	case IncreaseFixedPerContainer:
		increaseAmount = in.Increase.Value
	case IncreaseFixedPerGallon:
		increaseAmount = in.Increase.Value * gallons
	default:
		increaseAmount = totalCost * (in.Increase.Value / 100)
	}

	forecastTotal := totalCost + increaseAmount + dutyTotal
	if err := checkForecast(forecastTotal); err != nil {
		return DraughtResult{}, err
	}
	costPerPint := forecastTotal / pints
	pint, err := grossPrice(costPerPint, in.TargetGP)
	if err != nil {
		return DraughtResult{}, err
	}
	half, err := roundedPrice(pint/2 + in.HalfSurcharge)
	if err != nil {
		return DraughtResult{}, err
	}

	return DraughtResult{
		Input:          in,
		Gallons:        gallons,
		Pints:          pints,
		TotalCost:      totalCost,
		IncreaseAmount: increaseAmount,
		DutyTotal:      dutyTotal,
		ForecastTotal:  forecastTotal,
		CostPerPint:    costPerPint,
		Pint:           pint,
		Half:           half,
		Check: checkReality(realityParams{
			measure:           "Pint",
			currentPrice:      in.CurrentPrice,
			weeklyVolume:      in.WeeklyVolume,
			costPerUnit:       costPerPint,
			recommended:       pint,
			targetGP:          in.TargetGP,
			unitsPerContainer: pints,
		}),
	}, nil
}
