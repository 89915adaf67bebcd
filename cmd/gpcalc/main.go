package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Simplici0/gpcalc/internal/config"
	"github.com/Simplici0/gpcalc/internal/logging"
	"github.com/Simplici0/gpcalc/internal/pricing"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// cli holds the persistent flags and what PersistentPreRunE builds from them.
type cli struct {
	cfgFile string
	output  string
	sector  string
	tier    string

	logger zerolog.Logger
	out    io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "gpcalc",
		Short: "GP calculator for hospitality drinks pricing",
		Long: `Recommends VAT-inclusive sell prices for draught, spirits, wine, soft drinks
and post mix from supplier cost and a target gross profit, and checks current
prices against that target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(errOut)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./gpcalc.yaml)")
	flags.StringVarP(&c.output, "output", "o", outputTable, "output format: table or json")
	flags.StringVar(&c.sector, "sector", "", "venue sector used for default GP targets (pub, hotel)")
	flags.StringVar(&c.tier, "tier", "", "venue price tier used for default GP targets (low, mid, high)")

	for _, fc := range familyCommands {
		rootCmd.AddCommand(c.newFamilyCmd(fc))
	}
	rootCmd.AddCommand(c.newTargetsCmd(), c.newSchemaCmd())

	return rootCmd
}

func (c *cli) setup(errOut io.Writer) error {
	if c.output != outputTable && c.output != outputJSON {
		return fmt.Errorf("--output must be %s or %s, got %q", outputTable, outputJSON, c.output)
	}

	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.logger = logging.New(cfg.LogLevel, "console", errOut)
	return nil
}

// profile returns the venue profile selected by --sector and --tier, which
// may be zero.
func (c *cli) profile() (pricing.Profile, error) {
	if c.sector == "" && c.tier == "" {
		return pricing.Profile{}, nil
	}
	return pricing.ParseProfile(c.sector, c.tier)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
