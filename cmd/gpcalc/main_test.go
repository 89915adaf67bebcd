package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDraughtTable(t *testing.T) {
	out, err := execute(t, "draught", "--product", "House Lager", "--cost", "100", "--gp", "60")
	require.NoError(t, err)

	assert.Contains(t, out, "House Lager")
	assert.Regexp(t, `Recommended Pint\s+£3\.50  \*`, out)
	assert.Regexp(t, `Recommended Half\s+£1\.90  \*`, out)
	assert.Regexp(t, `Target GP\s+60%\n`, out)
}

func TestSpiritsJSON(t *testing.T) {
	out, err := execute(t, "spirits", "-o", "json", "--cost", "20", "--gp", "70", "--current-price", "2.50", "--weekly-volume", "2")
	require.NoError(t, err)

	var got resultOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, pricing.FamilySpirits, got.Family)
	require.Len(t, got.Recommended, 2)
	assert.InDelta(t, 2.9, got.Recommended[0].Amount, 1e-9)
	assert.InDelta(t, 5.8, got.Recommended[1].Amount, 1e-9)
	require.NotNil(t, got.Reality)
	require.NotNil(t, got.Reality.AnnualLeak)
	assert.Greater(t, *got.Reality.AnnualLeak, 0.0)
}

func TestProfileFillsTarget(t *testing.T) {
	out, err := execute(t, "soft-drinks", "--sector", "hotel", "--tier", "low", "--case-size", "24", "--cost", "12")
	require.NoError(t, err)
	assert.Regexp(t, `Target GP\s+72%`, out)
}

func TestPostMix(t *testing.T) {
	out, err := execute(t, "post-mix", "--bib-size", "10", "--cost", "60", "--ratio", "5:1", "--gp", "80")
	require.NoError(t, err)
	assert.Regexp(t, `Recommended Dash\s+£0\.30`, out)
}

func TestInvalidInputIsReported(t *testing.T) {
	_, err := execute(t, "wine", "--gp", "65")
	require.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrInvalidInput)

	_, err = execute(t, "wine", "--cost", "5", "--gp", "97")
	assert.ErrorIs(t, err, pricing.ErrInvalidInput)

	_, err = execute(t, "wine", "--cost", "5", "--gp", "65", "--output", "yaml")
	assert.Error(t, err)
}

func TestTargets(t *testing.T) {
	out, err := execute(t, "targets")
	require.NoError(t, err)
	assert.Regexp(t, `SECTOR\s+TIER\s+DRAUGHT`, out)
	assert.Regexp(t, `hotel\s+high\s+66%\s+75%\s+72%\s+78%\s+88%`, out)

	out, err = execute(t, "targets", "--sector", "pub", "--tier", "low", "-o", "json")
	require.NoError(t, err)
	var row map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, 55.0, row["draught"])
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	var schema struct {
		Families map[string]string         `json:"families"`
		Defs     map[string]map[string]any `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "DraughtInput", schema.Families["draught"])
	assert.Equal(t, "PostMixInput", schema.Families["post_mix"])
	for _, name := range []string{"DraughtInput", "SpiritsInput", "WineInput", "SoftDrinksInput", "PostMixInput", "Increase"} {
		assert.Contains(t, schema.Defs, name)
	}
}

func TestWeeklyVolumeUsageNamesTheFamilyUnit(t *testing.T) {
	want := map[string]string{
		"draught":     "kegs or casks sold per week",
		"spirits":     "bottles sold per week",
		"wine":        "bottles sold per week",
		"soft-drinks": "units sold per week",
		"post-mix":    "boxes sold per week",
	}

	root := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	for name, usage := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		flag := cmd.Flags().Lookup("weekly-volume")
		require.NotNil(t, flag, name)
		assert.Equal(t, usage, flag.Usage, name)
	}
}
