// Package variation fills text templates with per-page variables and picks
// phrasing variants deterministically, so pages sharing a category do not
// collide on identical titles or descriptions.
package variation

import (
	"strconv"
	"strings"
)

// Difficulty is the typed difficulty tier carried by race and course pages.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
	DifficultyExtreme  Difficulty = "extreme"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExtreme:
		return true
	default:
		return false
	}
}

// Variables is the substitution record used at generation time. Well-known
// fields are checked first; Extra is the open extension map.
type Variables struct {
	ShortName     string            `yaml:"short_name,omitempty" json:"shortName,omitempty"`
	DisplayName   string            `yaml:"display_name,omitempty" json:"displayName,omitempty"`
	Distance      string            `yaml:"distance,omitempty" json:"distance,omitempty"`
	DistanceKM    *float64          `yaml:"distance_km,omitempty" json:"distanceKm,omitempty"`
	City          string            `yaml:"city,omitempty" json:"city,omitempty"`
	Country       string            `yaml:"country,omitempty" json:"country,omitempty"`
	EventName     string            `yaml:"event_name,omitempty" json:"eventName,omitempty"`
	EventDate     string            `yaml:"event_date,omitempty" json:"eventDate,omitempty"`
	ElevationGain *int              `yaml:"elevation_gain,omitempty" json:"elevationGain,omitempty"`
	ElevationLoss *int              `yaml:"elevation_loss,omitempty" json:"elevationLoss,omitempty"`
	Difficulty    Difficulty        `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Extra         map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Placeholder names for the well-known fields.
const (
	KeyShortName     = "shortName"
	KeyDisplayName   = "displayName"
	KeyName          = "name"
	KeyDistance      = "distance"
	KeyDistanceKM    = "distanceKm"
	KeyCity          = "city"
	KeyCountry       = "country"
	KeyEventName     = "eventName"
	KeyEventDate     = "eventDate"
	KeyElevationGain = "elevationGain"
	KeyElevationLoss = "elevationLoss"
	KeyDifficulty    = "difficulty"
)

// Lookup resolves a placeholder name. Well-known fields win over Extra; an
// empty well-known field falls through to Extra.
func (v *Variables) Lookup(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.known(name); ok {
		return s, true
	}
	s, ok := v.Extra[name]
	return s, ok
}

func (v *Variables) known(name string) (string, bool) {
	switch name {
	case KeyShortName:
		return present(v.ShortName)
	case KeyDisplayName, KeyName:
		return present(v.DisplayName)
	case KeyDistance:
		return present(v.Distance)
	case KeyDistanceKM:
		if v.DistanceKM == nil {
			return "", false
		}
		return strconv.FormatFloat(*v.DistanceKM, 'f', -1, 64), true
	case KeyCity:
		return present(v.City)
	case KeyCountry:
		return present(v.Country)
	case KeyEventName:
		return present(v.EventName)
	case KeyEventDate:
		return present(v.EventDate)
	case KeyElevationGain:
		return intPresent(v.ElevationGain)
	case KeyElevationLoss:
		return intPresent(v.ElevationLoss)
	case KeyDifficulty:
		return present(string(v.Difficulty))
	default:
		return "", false
	}
}

func present(s string) (string, bool) {
	return s, strings.TrimSpace(s) != ""
}

func intPresent(p *int) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.Itoa(*p), true
}

// Clone returns a deep copy so derived descriptors never share mutable state.
func (v *Variables) Clone() *Variables {
	if v == nil {
		return nil
	}
	out := *v
	if v.DistanceKM != nil {
		d := *v.DistanceKM
		out.DistanceKM = &d
	}
	if v.ElevationGain != nil {
		g := *v.ElevationGain
		out.ElevationGain = &g
	}
	if v.ElevationLoss != nil {
		l := *v.ElevationLoss
		out.ElevationLoss = &l
	}
	if v.Extra != nil {
		out.Extra = make(map[string]string, len(v.Extra))
		for k, val := range v.Extra {
			out.Extra[k] = val
		}
	}
	return &out
}
