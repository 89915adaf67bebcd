package pricing

import (
	"fmt"
	"strings"
)

// Family tags the product family a calculation belongs to.
type Family string

const (
	FamilyDraught    Family = "draught"
	FamilySpirits    Family = "spirits"
	FamilyWine       Family = "wine"
	FamilySoftDrinks Family = "soft_drinks"
	FamilyPostMix    Family = "post_mix"
)

var families = []Family{FamilyDraught, FamilySpirits, FamilyWine, FamilySoftDrinks, FamilyPostMix}

// Families lists every supported family in display order.
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// Label is the human name used in reports.
func (f Family) Label() string {
	switch f {
	case FamilyDraught:
		return "Draught"
	case FamilySpirits:
		return "Spirits"
	case FamilyWine:
		return "Wine"
	case FamilySoftDrinks:
		return "Soft Drinks"
	case FamilyPostMix:
		return "Post Mix"
	}
	return string(f)
}

// ParseFamily accepts the canonical tag or the display label, case-insensitively.
func ParseFamily(raw string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, f := range families {
		if key == string(f) {
			return f, nil
		}
	}
	switch key {
	case "softdrinks", "soft_drink":
		return FamilySoftDrinks, nil
	case "postmix":
		return FamilyPostMix, nil
	}
	return "", invalid("family", fmt.Sprintf("%q is not a product family", raw))
}

// Input is one of DraughtInput, SpiritsInput, WineInput, SoftDrinksInput or
// PostMixInput.
type Input interface {
	Family() Family
	isInput()
}

// Result is the outcome of Compute for one family. The concrete type matches
// the input: DraughtResult, SpiritsResult, WineResult, SoftDrinksResult or
// PostMixResult.
type Result interface {
	Family() Family
	ProductName() string
	// Recommended lists the VAT-inclusive sell prices by measure.
	Recommended() []Price
	// Reality is nil when no current price was supplied.
	Reality() *RealityCheck
	Details() Details
}

// Price is a recommended VAT-inclusive sell price for one measure.
type Price struct {
	Measure string  `json:"measure"`
	Amount  float64 `json:"amount"`
}

// Compute validates in and runs the formula of its family.
func Compute(in Input) (Result, error) {
	switch v := in.(type) {
	case DraughtInput:
		return wrap(ComputeDraught(v))
	case *DraughtInput:
		return wrap(ComputeDraught(*v))
	case SpiritsInput:
		return wrap(ComputeSpirits(v))
	case *SpiritsInput:
		return wrap(ComputeSpirits(*v))
	case WineInput:
		return wrap(ComputeWine(v))
	case *WineInput:
		return wrap(ComputeWine(*v))
	case SoftDrinksInput:
		return wrap(ComputeSoftDrinks(v))
	case *SoftDrinksInput:
		return wrap(ComputeSoftDrinks(*v))
	case PostMixInput:
		return wrap(ComputePostMix(v))
	case *PostMixInput:
		return wrap(ComputePostMix(*v))
	case nil:
		return nil, invalid("input", "is required")
	}
	return nil, invalid("input", fmt.Sprintf("unsupported type %T", in))
}

func wrap[R Result](r R, err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

func productName(name, fallback string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return fallback
}
