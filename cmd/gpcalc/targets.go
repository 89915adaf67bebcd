package main

import (
	"github.com/spf13/cobra"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

func (c *cli) newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Show the default GP targets by venue sector and tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := c.profile()
			if err != nil {
				return err
			}
			return c.renderTargets(pricing.Targets(), profile)
		},
	}
}
