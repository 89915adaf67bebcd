package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// VATRate converts an ex-VAT amount into a VAT-inclusive one.
	VATRate = 1.20

	// roundingPlaces trims float representation noise before the ceiling,
	// so 11.999999999999998 and 12.000000000000002 both count as 12.
	roundingPlaces = 9
)

var ten = decimal.NewFromInt(10)

// SmartRound rounds a currency amount up to the nearest 0.10. NaN and
// infinities are returned unchanged.
func SmartRound(price float64) float64 {
	if !isFinite(price) {
		return price
	}
	d := decimal.NewFromFloat(price).Round(roundingPlaces)
	return d.Mul(ten).Ceil().Div(ten).InexactFloat64()
}

// GrossPrice returns the VAT-inclusive sell price that yields targetGP percent
// margin on net sales for an ex-VAT cost, rounded with SmartRound.
func GrossPrice(cost, targetGP float64) float64 {
	return SmartRound(cost / (1 - targetGP/100) * VATRate)
}

// grossPrice is GrossPrice for the engine: a price that overflows before or
// after rounding is rejected as too large.
func grossPrice(cost, targetGP float64) (float64, error) {
	raw := cost / (1 - targetGP/100) * VATRate
	if !isFinite(raw) {
		return 0, errTooLarge
	}
	return roundedPrice(raw)
}

// roundedPrice applies SmartRound and rejects a result that no longer fits a float64.
func roundedPrice(raw float64) (float64, error) {
	if !isFinite(raw) {
		return 0, errTooLarge
	}
	price := SmartRound(raw)
	if !isFinite(price) {
		return 0, errTooLarge
	}
	return price, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NetOf strips VAT from a VAT-inclusive price.
func NetOf(gross float64) float64 {
	return gross / VATRate
}

// RealizedGP returns the margin, in percent, of a net sale over an ex-VAT cost.
func RealizedGP(net, cost float64) float64 {
	return (net - cost) / net * 100
}
