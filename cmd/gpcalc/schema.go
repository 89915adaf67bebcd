package main

import (
	"fmt"
	"path"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

// schemaTypes are the calculator inputs published in the schema, keyed by family.
var schemaTypes = map[pricing.Family]any{
	pricing.FamilyDraught:    pricing.DraughtInput{},
	pricing.FamilySpirits:    pricing.SpiritsInput{},
	pricing.FamilyWine:       pricing.WineInput{},
	pricing.FamilySoftDrinks: pricing.SoftDrinksInput{},
	pricing.FamilyPostMix:    pricing.PostMixInput{},
}

func (c *cli) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the calculator inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.writeJSON(inputSchema())
		},
	}
}

func inputSchema() map[string]any {
	reflector := &jsonschema.Reflector{}

	definitions := make(map[string]any)
	families := make(map[string]string)
	for _, f := range pricing.Families() {
		schema := reflector.Reflect(schemaTypes[f])
		for name, def := range schema.Definitions {
			definitions[name] = def
		}
		families[string(f)] = path.Base(schema.Ref)
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"title":       "GP Calculator Inputs",
		"description": fmt.Sprintf("Input records for the %d product families", len(families)),
		"families":    families,
		"$defs":       definitions,
	}
}
