package pricing

// WeeksPerYear annualizes weekly sales volumes.
const WeeksPerYear = 52

// RealityCheck compares a price currently charged for the reference measure
// against the recommended one.
type RealityCheck struct {
	Measure      string  `json:"measure"`
	CurrentPrice float64 `json:"currentPrice"`
	NetPrice     float64 `json:"netPrice"`
	CostPerUnit  float64 `json:"costPerUnit"`
	RealizedGP   float64 `json:"realizedGp"`
	// GPGap is target minus realized GP; positive when under-priced.
	GPGap float64 `json:"gpGap"`
	// AnnualLeak is the net profit lost per year at the current price. Nil
	// when no weekly volume was given or the current price is not below the
	// recommended one.
	AnnualLeak *float64 `json:"annualLeak,omitempty"`
}

type realityParams struct {
	measure      string
	currentPrice float64
	weeklyVolume float64
	costPerUnit  float64
	recommended  float64
	targetGP     float64
	// unitsPerContainer converts the weekly container volume into measures.
	unitsPerContainer float64
}

// checkReality returns nil when no current price was supplied.
func checkReality(p realityParams) *RealityCheck {
	if p.currentPrice <= 0 {
		return nil
	}

	net := NetOf(p.currentPrice)
	realized := RealizedGP(net, p.costPerUnit)
	rc := &RealityCheck{
		Measure:      p.measure,
		CurrentPrice: p.currentPrice,
		NetPrice:     net,
		CostPerUnit:  p.costPerUnit,
		RealizedGP:   realized,
		GPGap:        p.targetGP - realized,
	}

	if p.weeklyVolume > 0 {
		leak := (NetOf(p.recommended) - net) * p.unitsPerContainer * p.weeklyVolume * WeeksPerYear
		if leak > 0 && isFinite(leak) {
			rc.AnnualLeak = &leak
		}
	}
	return rc
}

func validateOptional(currentPrice, weeklyVolume float64) error {
	if err := checkNonNegative("current_price", currentPrice); err != nil {
		return err
	}
	return checkNonNegative("weekly_volume", weeklyVolume)
}
