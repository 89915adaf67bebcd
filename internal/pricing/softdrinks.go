package pricing

// SoftDrinksInput prices a packaged soft drink from the case cost. Costs are ex-VAT.
type SoftDrinksInput struct {
	Product  string  `json:"product,omitempty"`
	CaseSize float64 `json:"caseSize"`
	CaseCost float64 `json:"caseCost"`
	TargetGP float64 `json:"targetGp"`
	// CurrentPrice is the price charged per unit.
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	// WeeklyVolume is in units.
	WeeklyVolume float64 `json:"weeklyVolume,omitempty"`
}

func (SoftDrinksInput) Family() Family { return FamilySoftDrinks }
func (SoftDrinksInput) isInput()       {}

// SoftDrinksResult holds the recommended retail price per unit.
type SoftDrinksResult struct {
	Input SoftDrinksInput `json:"input"`

	UnitCost float64 `json:"unitCost"`
	UnitRRP  float64 `json:"unitRrp"`

	Check *RealityCheck `json:"realityCheck,omitempty"`
}

func (r SoftDrinksResult) Family() Family         { return FamilySoftDrinks }
func (r SoftDrinksResult) ProductName() string    { return productName(r.Input.Product, "Soft Drink") }
func (r SoftDrinksResult) Reality() *RealityCheck { return r.Check }

func (r SoftDrinksResult) Recommended() []Price {
	return []Price{{Measure: "Unit", Amount: r.UnitRRP}}
}

func (in SoftDrinksInput) validate() error {
	if err := checkPositive("case_size", in.CaseSize); err != nil {
		return err
	}
	if err := checkPositive("cost", in.CaseCost); err != nil {
		return err
	}
	if err := checkTargetGP("gp", in.TargetGP); err != nil {
		return err
	}
	return validateOptional(in.CurrentPrice, in.WeeklyVolume)
}

// ComputeSoftDrinks prices one unit of a case.
func ComputeSoftDrinks(in SoftDrinksInput) (SoftDrinksResult, error) {
	if err := in.validate(); err != nil {
		return SoftDrinksResult{}, err
	}

	unitCost := in.CaseCost / in.CaseSize
	rrp, err := grossPrice(unitCost, in.TargetGP)
	if err != nil {
		return SoftDrinksResult{}, err
	}

	return SoftDrinksResult{
		Input:    in,
		UnitCost: unitCost,
		UnitRRP:  rrp,
		Check: checkReality(realityParams{
			measure:           "Unit",
			currentPrice:      in.CurrentPrice,
			weeklyVolume:      in.WeeklyVolume,
			costPerUnit:       unitCost,
			recommended:       rrp,
			targetGP:          in.TargetGP,
			unitsPerContainer: 1,
		}),
	}, nil
}
