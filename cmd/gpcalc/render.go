package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

type resultOutput struct {
	Family      pricing.Family        `json:"family"`
	Product     string                `json:"product"`
	Recommended []pricing.Price       `json:"recommended"`
	Reality     *pricing.RealityCheck `json:"reality,omitempty"`
	Details     pricing.Details       `json:"details"`
}

func (c *cli) renderResult(res pricing.Result) error {
	if c.output == outputJSON {
		return c.writeJSON(resultOutput{
			Family:      res.Family(),
			Product:     res.ProductName(),
			Recommended: res.Recommended(),
			Reality:     res.Reality(),
			Details:     res.Details(),
		})
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, d := range res.Details() {
		marker := ""
		if pricing.IsRecommended(d.Label) {
			marker = "  *"
		}
		fmt.Fprintf(tw, "%s\t%s%s\n", d.Label, d.Value, marker)
	}
	return tw.Flush()
}

func (c *cli) renderTargets(table pricing.TargetTable, profile pricing.Profile) error {
	if c.output == outputJSON {
		if profile.IsZero() {
			return c.writeJSON(table)
		}
		return c.writeJSON(table[profile.Sector][profile.Tier])
	}

	families := pricing.Families()
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)

	header := []string{"SECTOR", "TIER"}
	for _, f := range families {
		header = append(header, strings.ToUpper(f.Label()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, sector := range []pricing.Sector{pricing.SectorPub, pricing.SectorHotel} {
		for _, tier := range []pricing.Tier{pricing.TierLow, pricing.TierMid, pricing.TierHigh} {
			if !profile.IsZero() && (sector != profile.Sector || tier != profile.Tier) {
				continue
			}
			row := []string{string(sector), string(tier)}
			for _, f := range families {
				row = append(row, fmt.Sprintf("%g%%", table[sector][tier][f]))
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
