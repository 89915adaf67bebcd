package main

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/gpcalc/internal/calcinput"
	"github.com/Simplici0/gpcalc/internal/pricing"
)

type inputFlag struct {
	field string
	usage string
}

type familyCommand struct {
	family  pricing.Family
	short   string
	example string
	flags   []inputFlag
}

var (
	productFlag  = inputFlag{calcinput.FieldProduct, "product name shown in the report"}
	costFlag     = inputFlag{calcinput.FieldCost, "supplier cost ex-VAT (required)"}
	gpFlag       = inputFlag{calcinput.FieldGP, "target gross profit percentage (defaults from --sector/--tier)"}
	incTypeFlag  = inputFlag{calcinput.FieldIncreaseType, "forecast increase type: percentage, fixed_per_container or fixed_per_gallon"}
	incValueFlag = inputFlag{calcinput.FieldIncreaseValue, "forecast increase amount"}
	currentFlag  = inputFlag{calcinput.FieldCurrentPrice, "current VAT-inclusive sell price"}
)

func weeklyFlag(unit string) inputFlag {
	return inputFlag{calcinput.FieldWeeklyVolume, unit + " sold per week"}
}

var familyCommands = []familyCommand{
	{
		family:  pricing.FamilyDraught,
		short:   "Price a keg or cask by the pint and half",
		example: "gpcalc draught --cost 100 --gp 60 --size '11 Gal'",
		flags: []inputFlag{
			productFlag,
			{calcinput.FieldSize, "container size: 11 Gal, 22 Gal, 9 Gal, 1 Gal, 30 Ltr, 50 Ltr"},
			{calcinput.FieldBasis, "cost basis: per_container or per_gallon"},
			costFlag,
			gpFlag,
			{calcinput.FieldHalfSurcharge, "amount added to the half price (default 0.10)"},
			incTypeFlag,
			incValueFlag,
			{calcinput.FieldDuty, "extra duty, following the cost basis"},
			currentFlag,
			weeklyFlag("kegs or casks"),
		},
	},
	{
		family:  pricing.FamilySpirits,
		short:   "Price a spirit bottle by the 25ml and 50ml measure",
		example: "gpcalc spirits --cost 20 --gp 70 --size 70cl",
		flags:   []inputFlag{productFlag, {calcinput.FieldSize, "bottle size, e.g. 70cl"}, costFlag, gpFlag, incTypeFlag, incValueFlag, currentFlag, weeklyFlag("bottles")},
	},
	{
		family:  pricing.FamilyWine,
		short:   "Price a 75cl wine bottle and its glasses",
		example: "gpcalc wine --cost 5 --gp 65",
		flags:   []inputFlag{productFlag, costFlag, gpFlag, incTypeFlag, incValueFlag, currentFlag, weeklyFlag("bottles")},
	},
	{
		family:  pricing.FamilySoftDrinks,
		short:   "Price a packaged soft drink from its case cost",
		example: "gpcalc soft-drinks --case-size 24 --cost 12 --gp 70",
		flags:   []inputFlag{productFlag, {calcinput.FieldCaseSize, "units per case (required)"}, costFlag, gpFlag, currentFlag, weeklyFlag("units")},
	},
	{
		family:  pricing.FamilyPostMix,
		short:   "Price a post-mix bag-in-box by the measure",
		example: "gpcalc post-mix --bib-size 10 --cost 60 --ratio 5:1 --gp 80",
		flags:   []inputFlag{productFlag, {calcinput.FieldBIBSize, "bag-in-box size in litres (required)"}, costFlag, {calcinput.FieldRatio, "water to syrup dilution, e.g. 5:1 (required)"}, gpFlag, currentFlag, weeklyFlag("boxes")},
	},
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func (c *cli) newFamilyCmd(fc familyCommand) *cobra.Command {
	values := make(map[string]*string, len(fc.flags))

	cmd := &cobra.Command{
		Use:     flagName(string(fc.family)),
		Short:   fc.short,
		Example: fc.example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			for field, v := range values {
				if cmd.Flags().Changed(flagName(field)) {
					form.Set(field, *v)
				}
			}

			profile, err := c.profile()
			if err != nil {
				return err
			}
			in, err := calcinput.Decode(fc.family, form, profile)
			if err != nil {
				return err
			}
			res, err := pricing.Compute(in)
			if err != nil {
				return err
			}

			c.logger.Debug().
				Str("family", string(res.Family())).
				Str("product", res.ProductName()).
				Msg("calculated")
			return c.renderResult(res)
		},
	}

	for _, f := range fc.flags {
		values[f.field] = cmd.Flags().String(flagName(f.field), "", f.usage)
	}
	return cmd
}
