// Package calcinput turns raw form or flag values into pricing inputs.
//
// It is the caller side of the engine: required numbers that are missing or
// not numeric are rejected here, optional ones default to zero, and a blank
// target GP is filled from the venue profile when one is given.
package calcinput

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

// Field names shared by the HTTP form and the CLI flags.
const (
	FieldProduct       = "product"
	FieldSize          = "size"
	FieldBasis         = "basis"
	FieldCost          = "cost"
	FieldGP            = "gp"
	FieldHalfSurcharge = "half_surcharge"
	FieldIncreaseType  = "increase_type"
	FieldIncreaseValue = "increase_value"
	FieldDuty          = "duty"
	FieldCurrentPrice  = "current_price"
	FieldWeeklyVolume  = "weekly_volume"
	FieldCaseSize      = "case_size"
	FieldBIBSize       = "bib_size"
	FieldRatio         = "ratio"
)

// DefaultHalfSurcharge is added to half a pint when no surcharge is entered.
const DefaultHalfSurcharge = 0.10

// Decode builds the pricing input for family from values. profile may be zero.
func Decode(family pricing.Family, values url.Values, profile pricing.Profile) (pricing.Input, error) {
	d := decoder{values: values}

	gp, err := d.targetGP(family, profile)
	if err != nil {
		return nil, err
	}

	switch family {
	case pricing.FamilyDraught:
		return d.draught(gp)
	case pricing.FamilySpirits:
		return d.spirits(gp)
	case pricing.FamilyWine:
		return d.wine(gp)
	case pricing.FamilySoftDrinks:
		return d.softDrinks(gp)
	case pricing.FamilyPostMix:
		return d.postMix(gp)
	}
	return nil, &pricing.InputError{Field: "family", Reason: fmt.Sprintf("%q is not a product family", family)}
}

type decoder struct {
	values url.Values
}

func (d decoder) raw(field string) string {
	return strings.TrimSpace(d.values.Get(field))
}

// required parses a number that must be present.
func (d decoder) required(field string) (float64, error) {
	raw := d.raw(field)
	if raw == "" {
		return 0, &pricing.InputError{Field: field, Reason: "is required"}
	}
	return parseNumber(raw, field)
}

// optional parses a number that defaults to zero when blank.
func (d decoder) optional(field string) (float64, error) {
	raw := d.raw(field)
	if raw == "" {
		return 0, nil
	}
	return parseNumber(raw, field)
}

func parseNumber(raw, field string) (float64, error) {
	raw = strings.TrimPrefix(raw, "£")
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, &pricing.InputError{Field: field, Reason: "must be a number"}
	}
	return value, nil
}

// targetGP honours an entered target and only falls back to the profile
// default when the field was left blank.
func (d decoder) targetGP(family pricing.Family, profile pricing.Profile) (float64, error) {
	if d.raw(FieldGP) != "" || profile.IsZero() {
		return d.required(FieldGP)
	}
	return pricing.DefaultTarget(profile, family)
}

func (d decoder) increase() (pricing.Increase, error) {
	kind, err := pricing.ParseIncreaseKind(d.raw(FieldIncreaseType))
	if err != nil {
		return pricing.Increase{}, err
	}
	value, err := d.optional(FieldIncreaseValue)
	if err != nil {
		return pricing.Increase{}, err
	}
	return pricing.Increase{Kind: kind, Value: value}, nil
}

// optionals reads current price and weekly volume.
func (d decoder) optionals() (float64, float64, error) {
	current, err := d.optional(FieldCurrentPrice)
	if err != nil {
		return 0, 0, err
	}
	weekly, err := d.optional(FieldWeeklyVolume)
	if err != nil {
		return 0, 0, err
	}
	return current, weekly, nil
}

func (d decoder) draught(gp float64) (pricing.Input, error) {
	size := d.raw(FieldSize)
	if size == "" {
		size = string(pricing.Size11Gal)
	}
	unit, err := pricing.ParseUnitSize(size)
	if err != nil {
		return nil, err
	}
	basis, err := pricing.ParseCostBasis(d.raw(FieldBasis))
	if err != nil {
		return nil, err
	}
	cost, err := d.required(FieldCost)
	if err != nil {
		return nil, err
	}
	half := DefaultHalfSurcharge
	if d.raw(FieldHalfSurcharge) != "" {
		if half, err = d.optional(FieldHalfSurcharge); err != nil {
			return nil, err
		}
	}
	inc, err := d.increase()
	if err != nil {
		return nil, err
	}
	duty, err := d.optional(FieldDuty)
	if err != nil {
		return nil, err
	}
	current, weekly, err := d.optionals()
	if err != nil {
		return nil, err
	}

	return pricing.DraughtInput{
		Product:       d.raw(FieldProduct),
		Size:          unit,
		Basis:         basis,
		Cost:          cost,
		TargetGP:      gp,
		HalfSurcharge: half,
		Increase:      inc,
		ExtraDuty:     duty,
		CurrentPrice:  current,
		WeeklyVolume:  weekly,
	}, nil
}

func (d decoder) spirits(gp float64) (pricing.Input, error) {
	size := d.raw(FieldSize)
	if size == "" {
		size = "70cl"
	}
	cl, err := pricing.ParseBottleSize(size)
	if err != nil {
		return nil, err
	}
	cost, err := d.required(FieldCost)
	if err != nil {
		return nil, err
	}
	inc, err := d.increase()
	if err != nil {
		return nil, err
	}
	current, weekly, err := d.optionals()
	if err != nil {
		return nil, err
	}

	return pricing.SpiritsInput{
		Product:      d.raw(FieldProduct),
		SizeCl:       cl,
		Cost:         cost,
		TargetGP:     gp,
		Increase:     inc,
		CurrentPrice: current,
		WeeklyVolume: weekly,
	}, nil
}

func (d decoder) wine(gp float64) (pricing.Input, error) {
	cost, err := d.required(FieldCost)
	if err != nil {
		return nil, err
	}
	inc, err := d.increase()
	if err != nil {
		return nil, err
	}
	current, weekly, err := d.optionals()
	if err != nil {
		return nil, err
	}

	return pricing.WineInput{
		Product:      d.raw(FieldProduct),
		Cost:         cost,
		TargetGP:     gp,
		Increase:     inc,
		CurrentPrice: current,
		WeeklyVolume: weekly,
	}, nil
}

func (d decoder) softDrinks(gp float64) (pricing.Input, error) {
	caseSize, err := d.required(FieldCaseSize)
	if err != nil {
		return nil, err
	}
	cost, err := d.required(FieldCost)
	if err != nil {
		return nil, err
	}
	current, weekly, err := d.optionals()
	if err != nil {
		return nil, err
	}

	return pricing.SoftDrinksInput{
		Product:      d.raw(FieldProduct),
		CaseSize:     caseSize,
		CaseCost:     cost,
		TargetGP:     gp,
		CurrentPrice: current,
		WeeklyVolume: weekly,
	}, nil
}

func (d decoder) postMix(gp float64) (pricing.Input, error) {
	litres, err := d.required(FieldBIBSize)
	if err != nil {
		return nil, err
	}
	cost, err := d.required(FieldCost)
	if err != nil {
		return nil, err
	}
	ratio, err := parseRatio(d.raw(FieldRatio))
	if err != nil {
		return nil, err
	}
	current, weekly, err := d.optionals()
	if err != nil {
		return nil, err
	}

	return pricing.PostMixInput{
		Product:      d.raw(FieldProduct),
		BIBLitres:    litres,
		BIBCost:      cost,
		Ratio:        ratio,
		TargetGP:     gp,
		CurrentPrice: current,
		WeeklyVolume: weekly,
	}, nil
}

// parseRatio reads "5", "5:1" or "5 : 1" as five parts water to one of syrup.
func parseRatio(raw string) (float64, error) {
	if raw == "" {
		return 0, &pricing.InputError{Field: FieldRatio, Reason: "is required"}
	}
	water, syrup, found := strings.Cut(raw, ":")
	if found && strings.TrimSpace(syrup) != "1" {
		return 0, &pricing.InputError{Field: FieldRatio, Reason: "must be expressed as X:1"}
	}
	return parseNumber(strings.TrimSpace(water), FieldRatio)
}
