package pricing

var postMixMeasures = []struct {
	measure string
	ml      float64
}{
	{measure: "Pint", ml: PintMl},
	{measure: "Half", ml: 284},
	{measure: "16oz", ml: 454},
	{measure: "Dash", ml: 50},
}

// PostMixInput prices dispensed soft drinks from a bag-in-box of syrup.
// Costs are ex-VAT.
type PostMixInput struct {
	Product   string  `json:"product,omitempty"`
	BIBLitres float64 `json:"bibLitres"`
	BIBCost   float64 `json:"bibCost"`
	// Ratio is the parts of water mixed with one part syrup, as in "5:1".
	Ratio    float64 `json:"ratio"`
	TargetGP float64 `json:"targetGp"`
	// CurrentPrice is the price charged per pint.
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	// WeeklyVolume is in boxes.
	WeeklyVolume float64 `json:"weeklyVolume,omitempty"`
}

func (PostMixInput) Family() Family { return FamilyPostMix }
func (PostMixInput) isInput()       {}

// MeasurePrice is a dispensed measure and its recommended price.
type MeasurePrice struct {
	Measure string  `json:"measure"`
	Ml      float64 `json:"ml"`
	Price   float64 `json:"price"`
}

// PostMixResult holds prices for pint, half, 16oz and dash.
type PostMixResult struct {
	Input PostMixInput `json:"input"`

	TotalLiquidMl float64        `json:"totalLiquidMl"`
	CostPerMl     float64        `json:"costPerMl"`
	PintsPerBIB   float64        `json:"pintsPerBib"`
	Measures      []MeasurePrice `json:"measures"`

	Check *RealityCheck `json:"realityCheck,omitempty"`
}

func (r PostMixResult) Family() Family         { return FamilyPostMix }
func (r PostMixResult) ProductName() string    { return productName(r.Input.Product, "Post Mix") }
func (r PostMixResult) Reality() *RealityCheck { return r.Check }

func (r PostMixResult) Recommended() []Price {
	prices := make([]Price, 0, len(r.Measures))
	for _, m := range r.Measures {
		prices = append(prices, Price{Measure: m.Measure, Amount: m.Price})
	}
	return prices
}

// Measure returns the price of the named measure.
func (r PostMixResult) Measure(measure string) (float64, bool) {
	for _, m := range r.Measures {
		if m.Measure == measure {
			return m.Price, true
		}
	}
	return 0, false
}

func (in PostMixInput) validate() error {
	if err := checkPositive("bib_size", in.BIBLitres); err != nil {
		return err
	}
	if err := checkPositive("cost", in.BIBCost); err != nil {
		return err
	}
	if err := checkNonNegative("ratio", in.Ratio); err != nil {
		return err
	}
	if err := checkTargetGP("gp", in.TargetGP); err != nil {
		return err
	}
	return validateOptional(in.CurrentPrice, in.WeeklyVolume)
}

// ComputePostMix spreads the box cost over the diluted liquid and prices each
// fixed measure.
func ComputePostMix(in PostMixInput) (PostMixResult, error) {
	if err := in.validate(); err != nil {
		return PostMixResult{}, err
	}

	totalMl := in.BIBLitres * (in.Ratio + 1) * 1000
	costPerMl := in.BIBCost / totalMl
	pintsPerBIB := totalMl / PintMl

	measures := make([]MeasurePrice, 0, len(postMixMeasures))
	for _, m := range postMixMeasures {
		price, err := grossPrice(costPerMl*m.ml, in.TargetGP)
		if err != nil {
			return PostMixResult{}, err
		}
		measures = append(measures, MeasurePrice{
			Measure: m.measure,
			Ml:      m.ml,
			Price:   price,
		})
	}
	pint := measures[0].Price

	return PostMixResult{
		Input:         in,
		TotalLiquidMl: totalMl,
		CostPerMl:     costPerMl,
		PintsPerBIB:   pintsPerBIB,
		Measures:      measures,
		Check: checkReality(realityParams{
			measure:           "Pint",
			currentPrice:      in.CurrentPrice,
			weeklyVolume:      in.WeeklyVolume,
			costPerUnit:       costPerMl * PintMl,
			recommended:       pint,
			targetGP:          in.TargetGP,
			unitsPerContainer: pintsPerBIB,
		}),
	}, nil
}
