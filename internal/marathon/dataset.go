// Package marathon turns the running-site dataset (races, distances and
// finish-time goals) into page descriptors and hub definitions.
package marathon

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

//go:embed data/*.yaml
var embedded embed.FS

// Race is one event on the calendar.
type Race struct {
	Slug          string               `yaml:"slug"`
	Name          string               `yaml:"name"`
	City          string               `yaml:"city"`
	Country       string               `yaml:"country"`
	Date          string               `yaml:"date"`
	DistanceKM    float64              `yaml:"distance_km"`
	ElevationGain int                  `yaml:"elevation_gain"`
	ElevationLoss int                  `yaml:"elevation_loss"`
	Difficulty    variation.Difficulty `yaml:"difficulty"`
	Major         bool                 `yaml:"major"`
	Website       string               `yaml:"website"`
}

// StartDate parses Date; the zero time is returned when it is unset or malformed.
func (r Race) StartDate() time.Time {
	t, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Distance is a standard race distance.
type Distance struct {
	Slug  string  `yaml:"slug"`
	Name  string  `yaml:"name"`
	KM    float64 `yaml:"km"`
	Major bool    `yaml:"major"`
}

// TimeGoal is a finish-time target over one distance.
type TimeGoal struct {
	Slug     string        `yaml:"slug"`
	Label    string        `yaml:"label"`
	Finish   time.Duration `yaml:"finish"`
	Distance string        `yaml:"distance"`
}

// Dataset is the full set of domain records.
type Dataset struct {
	Races     []Race     `yaml:"races,omitempty"`
	Distances []Distance `yaml:"distances,omitempty"`
	Goals     []TimeGoal `yaml:"goals,omitempty"`
}

// Embedded returns the dataset compiled into the binary.
func Embedded() (*Dataset, error) {
	entries, err := embedded.ReadDir("data")
	if err != nil {
		return nil, err
	}
	ds := &Dataset{}
	for _, e := range entries {
		f, err := embedded.Open("data/" + e.Name())
		if err != nil {
			return nil, err
		}
		part, err := Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("data/%s: %w", e.Name(), err)
		}
		ds.merge(part)
	}
	return ds, ds.normalize()
}

// LoadFile reads a dataset from a single YAML file.
func LoadFile(path string) (*Dataset, error) {
	// #nosec G304 -- operator supplied dataset path
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, ds.normalize()
}

// Decode parses a dataset document without normalising it.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && err != io.EOF {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) merge(o *Dataset) {
	ds.Races = append(ds.Races, o.Races...)
	ds.Distances = append(ds.Distances, o.Distances...)
	ds.Goals = append(ds.Goals, o.Goals...)
}

// normalize fills derived slugs and checks cross references.
func (ds *Dataset) normalize() error {
	for i := range ds.Races {
		r := &ds.Races[i]
		if r.Slug == "" {
			r.Slug = variation.Slugify(strings.TrimSuffix(r.Name, " Marathon"))
		}
		if r.Difficulty == "" {
			r.Difficulty = variation.DifficultyModerate
		}
	}
	for i := range ds.Distances {
		if ds.Distances[i].Slug == "" {
			ds.Distances[i].Slug = variation.Slugify(ds.Distances[i].Name)
		}
	}
	return ds.Validate()
}

// Validate reports the first inconsistency in the dataset.
func (ds *Dataset) Validate() error {
	races := make(map[string]bool, len(ds.Races))
	for _, r := range ds.Races {
		switch {
		case r.Slug == "" || r.Name == "":
			return fmt.Errorf("race %q: slug and name are required", r.Name)
		case races[r.Slug]:
			return fmt.Errorf("race %q: duplicate slug", r.Slug)
		case !r.Difficulty.Valid():
			return fmt.Errorf("race %q: unknown difficulty %q", r.Slug, r.Difficulty)
		case r.StartDate().IsZero():
			return fmt.Errorf("race %q: date must be YYYY-MM-DD", r.Slug)
		case r.DistanceKM <= 0:
			return fmt.Errorf("race %q: distance must be positive", r.Slug)
		}
		races[r.Slug] = true
	}

	distances := make(map[string]bool, len(ds.Distances))
	for _, d := range ds.Distances {
		if d.KM <= 0 {
			return fmt.Errorf("distance %q: km must be positive", d.Slug)
		}
		if distances[d.Slug] {
			return fmt.Errorf("distance %q: duplicate slug", d.Slug)
		}
		distances[d.Slug] = true
	}

	goals := make(map[string]bool, len(ds.Goals))
	for _, g := range ds.Goals {
		key := g.Distance + "/" + g.Slug
		switch {
		case !distances[g.Distance]:
			return fmt.Errorf("goal %q: unknown distance %q", g.Slug, g.Distance)
		case g.Finish <= 0:
			return fmt.Errorf("goal %q: finish time must be positive", g.Slug)
		case goals[key]:
			return fmt.Errorf("goal %q: duplicate for %s", g.Slug, g.Distance)
		}
		goals[key] = true
	}
	return nil
}

// Distance looks up a distance by slug.
func (ds *Dataset) Distance(slug string) (Distance, bool) {
	for _, d := range ds.Distances {
		if d.Slug == slug {
			return d, true
		}
	}
	return Distance{}, false
}

// GoalsFor returns the goals over one distance, in dataset order.
func (ds *Dataset) GoalsFor(distance string) []TimeGoal {
	var out []TimeGoal
	for _, g := range ds.Goals {
		if g.Distance == distance {
			out = append(out, g)
		}
	}
	return out
}

// Pace is the average time per kilometre needed to hit finish over km.
func Pace(finish time.Duration, km float64) time.Duration {
	if km <= 0 {
		return 0
	}
	secs := finish.Seconds() / km
	return time.Duration(int64(secs+0.5)) * time.Second
}

// FormatClock renders d as h:mm:ss, or m:ss under an hour.
func FormatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
