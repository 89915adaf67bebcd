package pricing

// BottleMl is the wine bottle size all wine costs refer to.
const BottleMl = 750.0

// Glass measures carry a richer margin the smaller they are.
var wineGlasses = []struct {
	measure  string
	ml       float64
	gpUplift float64
}{
	{measure: "250ml", ml: 250, gpUplift: 0},
	{measure: "175ml", ml: 175, gpUplift: 2},
	{measure: "125ml", ml: 125, gpUplift: 4},
}

// maxWineGPUplift is the largest per-glass GP uplift; the target plus this
// uplift must stay below 100.
const maxWineGPUplift = 4

// WineInput prices a 750ml bottle and the three legal glass measures. Costs are ex-VAT.
type WineInput struct {
	Product  string   `json:"product,omitempty"`
	Cost     float64  `json:"cost"`
	TargetGP float64  `json:"targetGp"`
	Increase Increase `json:"increase"`
	// CurrentPrice is the bottle price; glass prices are not checked.
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	// WeeklyVolume is in bottles.
	WeeklyVolume float64 `json:"weeklyVolume,omitempty"`
}

func (WineInput) Family() Family { return FamilyWine }
func (WineInput) isInput()       {}

// GlassPrice is a glass measure with the GP it was priced at.
type GlassPrice struct {
	Measure  string  `json:"measure"`
	Ml       float64 `json:"ml"`
	TargetGP float64 `json:"targetGp"`
	Price    float64 `json:"price"`
}

// WineResult holds the bottle price and 250/175/125ml glass prices.
type WineResult struct {
	Input WineInput `json:"input"`

	NewCost   float64      `json:"newCost"`
	CostPerMl float64      `json:"costPerMl"`
	Bottle    float64      `json:"bottle"`
	Glasses   []GlassPrice `json:"glasses"`

	Check *RealityCheck `json:"realityCheck,omitempty"`
}

func (r WineResult) Family() Family         { return FamilyWine }
func (r WineResult) ProductName() string    { return productName(r.Input.Product, "Wine") }
func (r WineResult) Reality() *RealityCheck { return r.Check }

func (r WineResult) Recommended() []Price {
	prices := make([]Price, 0, len(r.Glasses)+1)
	prices = append(prices, Price{Measure: "Bottle", Amount: r.Bottle})
	for _, g := range r.Glasses {
		prices = append(prices, Price{Measure: g.Measure, Amount: g.Price})
	}
	return prices
}

// Glass returns the price of the named measure ("250ml", "175ml", "125ml").
func (r WineResult) Glass(measure string) (float64, bool) {
	for _, g := range r.Glasses {
		if g.Measure == measure {
			return g.Price, true
		}
	}
	return 0, false
}

func (in WineInput) validate() error {
	if err := checkNonNegative("cost", in.Cost); err != nil {
		return err
	}
	if err := checkTargetGP("gp", in.TargetGP); err != nil {
		return err
	}
	if in.TargetGP+maxWineGPUplift >= 100 {
		return invalid("gp", "leaves no margin for the 125ml glass uplift")
	}
	if err := in.Increase.validate(false); err != nil {
		return err
	}
	return validateOptional(in.CurrentPrice, in.WeeklyVolume)
}

// ComputeWine prices the bottle at the target GP and each glass at the target
// plus its uplift.
func ComputeWine(in WineInput) (WineResult, error) {
	if err := in.validate(); err != nil {
		return WineResult{}, err
	}

	newCost := in.Increase.applyToBottle(in.Cost)
	if err := checkForecast(newCost); err != nil {
		return WineResult{}, err
	}
	bottle, err := grossPrice(newCost, in.TargetGP)
	if err != nil {
		return WineResult{}, err
	}
	costPerMl := newCost / BottleMl

	glasses := make([]GlassPrice, 0, len(wineGlasses))
	for _, g := range wineGlasses {
		gp := in.TargetGP + g.gpUplift
		price, err := grossPrice(costPerMl*g.ml, gp)
		if err != nil {
			return WineResult{}, err
		}
		glasses = append(glasses, GlassPrice{
			Measure:  g.measure,
			Ml:       g.ml,
			TargetGP: gp,
			Price:    price,
		})
	}

	return WineResult{
		Input:     in,
		NewCost:   newCost,
		CostPerMl: costPerMl,
		Bottle:    bottle,
		Glasses:   glasses,
		Check: checkReality(realityParams{
			measure:           "Bottle",
			currentPrice:      in.CurrentPrice,
			weeklyVolume:      in.WeeklyVolume,
			costPerUnit:       newCost,
			recommended:       bottle,
			targetGP:          in.TargetGP,
			unitsPerContainer: 1,
		}),
	}, nil
}
