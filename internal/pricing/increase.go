package pricing

import (
	"fmt"
	"strings"
)

// IncreaseKind selects how a forecast supplier price increase is applied.
type IncreaseKind string

const (
	// IncreasePercentage raises the container cost by Value percent.
	IncreasePercentage IncreaseKind = "percentage"
	// IncreaseFixedPerContainer adds Value once per keg, cask, bottle or case.
	IncreaseFixedPerContainer IncreaseKind = "fixed_per_container"
	// IncreaseFixedPerGallon adds Value for every gallon in the container.
	// Only draught products are sold by the gallon.
	IncreaseFixedPerGallon IncreaseKind = "fixed_per_gallon"
)

// Increase is a forecast supplier price increase. The zero value means none.
type Increase struct {
	Kind  IncreaseKind `json:"kind,omitempty" jsonschema:"enum=percentage,enum=fixed_per_container,enum=fixed_per_gallon"`
	Value float64      `json:"value,omitempty"`
}

// ParseIncreaseKind maps the canonical tags and the labels offered on the
// calculator forms ("Percentage (%)", "Fixed £ Barrel", "Fixed £ Gallon",
// "Fixed £ Bottle") to an IncreaseKind. Blank means percentage.
func ParseIncreaseKind(raw string) (IncreaseKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "percentage", "percentage (%)", "percent", "%":
		return IncreasePercentage, nil
	case "fixed_per_container", "fixed £ barrel", "fixed £ bottle", "fixed £ case", "fixed £ bib", "fixed per container":
		return IncreaseFixedPerContainer, nil
	case "fixed_per_gallon", "fixed £ gallon", "fixed per gallon":
		return IncreaseFixedPerGallon, nil
	}
	return "", invalid("increase_type", fmt.Sprintf("%q is not a supported increase type", raw))
}

func (inc Increase) validate(allowPerGallon bool) error {
	if err := checkFinite("increase_value", inc.Value); err != nil {
		return err
	}
	switch inc.Kind {
	case "", IncreasePercentage, IncreaseFixedPerContainer:
		return nil
	case IncreaseFixedPerGallon:
		if allowPerGallon {
			return nil
		}
		return invalid("increase_type", "fixed per gallon only applies to draught")
	}
	return invalid("increase_type", fmt.Sprintf("%q is not a supported increase type", inc.Kind))
}

// applyToBottle returns the container cost after the increase. Used by the
// bottle families, where a fixed increase is per bottle.
func (inc Increase) applyToBottle(cost float64) float64 {
	if inc.Kind == IncreaseFixedPerContainer {
		return cost + inc.Value
	}
	return cost * (1 + inc.Value/100)
}
