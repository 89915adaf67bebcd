package pricing

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotApplicable is shown for reality-check rows without enough input.
const NotApplicable = "N/A"

// Detail is one labelled, display-formatted line of a calculation.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details is the flattened, ordered record of a calculation used by history
// and reports.
type Details []Detail

// Get returns the value of the first detail with the given label.
func (d Details) Get(label string) (string, bool) {
	for _, item := range d {
		if item.Label == label {
			return item.Value, true
		}
	}
	return "", false
}

// Map flattens the details into a label→value map.
func (d Details) Map() map[string]string {
	out := make(map[string]string, len(d))
	for _, item := range d {
		out[item.Label] = item.Value
	}
	return out
}

var gb = message.NewPrinter(language.BritishEnglish)

func money(v float64) string {
	return gb.Sprintf("£%.2f", v)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type detailsBuilder struct {
	items Details
}

func (b *detailsBuilder) add(label, value string) *detailsBuilder {
	b.items = append(b.items, Detail{Label: label, Value: value})
	return b
}

func (b *detailsBuilder) recommended(prices []Price) *detailsBuilder {
	for _, p := range prices {
		b.add("Recommended "+p.Measure, money(p.Amount))
	}
	return b
}

func (b *detailsBuilder) reality(rc *RealityCheck) *detailsBuilder {
	if rc == nil {
		return b.add("Current Price", NotApplicable).
			add("Actual GP", NotApplicable).
			add("Annual Profit Leak", NotApplicable)
	}
	b.add("Current Price", money(rc.CurrentPrice)+" ("+rc.Measure+")")
	b.add("Actual GP", gb.Sprintf("%.1f%%", rc.RealizedGP))
	if rc.AnnualLeak == nil {
		return b.add("Annual Profit Leak", NotApplicable)
	}
	return b.add("Annual Profit Leak", money(*rc.AnnualLeak))
}

func increaseLabel(inc Increase, container string) string {
	var kind string
	switch inc.Kind {
	case IncreaseFixedPerContainer:
		kind = "Fixed £ " + container
	case IncreaseFixedPerGallon:
		kind = "Fixed £ Gallon"
	default:
		kind = "Percentage (%)"
	}
	return number(inc.Value) + " (" + kind + ")"
}

func basisLabel(b CostBasis) string {
	if b == PerGallon {
		return "Per Gallon"
	}
	return "Per Barrel"
}

// Details renders the draught calculation.
func (r DraughtResult) Details() Details {
	in := r.Input
	b := &detailsBuilder{}
	b.add("Product", r.ProductName()).
		add("Unit Size", string(in.Size)).
		add("Cost Basis", basisLabel(in.Basis)).
		add("Current Cost (Ex-VAT)", money(in.Cost)).
		add("Target GP", percent(in.TargetGP)).
		add("Half Surcharge", money(in.HalfSurcharge)).
		add("Forecast Increase", increaseLabel(in.Increase, "Barrel")).
		add("Extra Duty", money(in.ExtraDuty)).
		add("New Total Cost (Ex-VAT)", money(r.ForecastTotal)).
		recommended(r.Recommended()).
		reality(r.Check)
	return b.items
}

// Details renders the spirits calculation.
func (r SpiritsResult) Details() Details {
	in := r.Input
	b := &detailsBuilder{}
	b.add("Product", r.ProductName()).
		add("Bottle Size", number(in.SizeCl)+"cl").
		add("Current Cost (Ex-VAT)", money(in.Cost)).
		add("Target GP", percent(in.TargetGP)).
		add("Forecast Increase", increaseLabel(in.Increase, "Bottle")).
		add("New Bottle Cost (Ex-VAT)", money(r.NewCost)).
		recommended(r.Recommended()).
		reality(r.Check)
	return b.items
}

// Details renders the wine calculation.
func (r WineResult) Details() Details {
	in := r.Input
	b := &detailsBuilder{}
	b.add("Product", r.ProductName()).
		add("Current Cost (Ex-VAT)", money(in.Cost)).
		add("Target GP", percent(in.TargetGP)).
		add("Forecast Increase", increaseLabel(in.Increase, "Bottle")).
		add("New Btl Cost (Ex-VAT)", money(r.NewCost)).
		recommended(r.Recommended()).
		reality(r.Check)
	return b.items
}

// Details renders the soft drinks calculation.
func (r SoftDrinksResult) Details() Details {
	in := r.Input
	b := &detailsBuilder{}
	b.add("Product", r.ProductName()).
		add("Case Size", number(in.CaseSize)).
		add("Case Cost (Ex-VAT)", money(in.CaseCost)).
		add("Target GP", percent(in.TargetGP)).
		add("Unit Cost (Ex-VAT)", money(r.UnitCost)).
		recommended(r.Recommended()).
		reality(r.Check)
	return b.items
}

// Details renders the post mix calculation.
func (r PostMixResult) Details() Details {
	in := r.Input
	b := &detailsBuilder{}
	b.add("Product", r.ProductName()).
		add("BIB Size", number(in.BIBLitres)+"L").
		add("BIB Cost (Ex-VAT)", money(in.BIBCost)).
		add("Dilution Ratio", number(in.Ratio)+":1").
		add("Target GP", percent(in.TargetGP)).
		add("Cost per Pint (Ex-VAT)", money(r.CostPerMl*PintMl)).
		recommended(r.Recommended()).
		reality(r.Check)
	return b.items
}

// IsRecommended reports whether a detail label carries a recommended price.
func IsRecommended(label string) bool {
	return strings.HasPrefix(label, "Recommended ")
}
