package pricing

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sector is the kind of venue.
type Sector string

const (
	SectorPub   Sector = "pub"
	SectorHotel Sector = "hotel"
)

// Tier is the venue's price positioning.
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// Profile identifies a row of the GP target table.
type Profile struct {
	Sector Sector `json:"sector"`
	Tier   Tier   `json:"tier"`
}

// IsZero reports whether no profile was chosen.
func (p Profile) IsZero() bool {
	return p.Sector == "" && p.Tier == ""
}

// ParseProfile reads a sector and tier, case-insensitively.
func ParseProfile(sector, tier string) (Profile, error) {
	p := Profile{
		Sector: Sector(strings.ToLower(strings.TrimSpace(sector))),
		Tier:   Tier(strings.ToLower(strings.TrimSpace(tier))),
	}
	if p.Sector != SectorPub && p.Sector != SectorHotel {
		return Profile{}, invalid("sector", fmt.Sprintf("%q must be pub or hotel", sector))
	}
	if p.Tier != TierLow && p.Tier != TierMid && p.Tier != TierHigh {
		return Profile{}, invalid("tier", fmt.Sprintf("%q must be low, mid or high", tier))
	}
	return p, nil
}

// TargetTable maps sector, tier and family to a recommended GP%.
type TargetTable map[Sector]map[Tier]map[Family]float64

//go:embed targets.yaml
var targetsYAML []byte

var (
	targetsOnce  sync.Once
	targetsTable TargetTable
)

func loadTargets() TargetTable {
	targetsOnce.Do(func() {
		var t TargetTable
		if err := yaml.Unmarshal(targetsYAML, &t); err != nil {
			panic(fmt.Sprintf("pricing: parse embedded targets.yaml: %v", err))
		}
		targetsTable = t
	})
	return targetsTable
}

// Targets returns a copy of the venue-profile GP target table.
func Targets() TargetTable {
	src := loadTargets()
	out := make(TargetTable, len(src))
	for sector, tiers := range src {
		out[sector] = make(map[Tier]map[Family]float64, len(tiers))
		for tier, fams := range tiers {
			row := make(map[Family]float64, len(fams))
			for f, gp := range fams {
				row[f] = gp
			}
			out[sector][tier] = row
		}
	}
	return out
}

// DefaultTarget looks up the recommended GP% for a family at a venue profile.
func DefaultTarget(p Profile, family Family) (float64, error) {
	gp, ok := loadTargets()[p.Sector][p.Tier][family]
	if !ok {
		return 0, invalid("gp", fmt.Sprintf("no default target for %s/%s/%s", p.Sector, p.Tier, family))
	}
	return gp, nil
}
