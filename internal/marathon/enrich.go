package marathon

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"git.home.luguber.info/inful/seobuilder/internal/elevation"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/scale"
	"git.home.luguber.info/inful/seobuilder/internal/variation"
)

// ProfileSource yields course elevation profiles. *elevation.Client
// satisfies it.
type ProfileSource interface {
	Profile(ctx context.Context, course string) (*elevation.Profile, error)
}

func needsElevation(d *page.Descriptor) bool {
	switch d.Category {
	case page.CategoryRaceGuide, page.CategoryElevationTool:
		return d.Variables != nil && d.Variables.EventName != ""
	case page.CategoryPaceTool, page.CategoryFuelTool, page.CategoryBlogPost:
		return false
	default:
		return false
	}
}

// EnrichElevation replaces the dataset elevation figures on race and
// elevation pages with the service's measured profile. Input descriptors are
// never modified; enriched pages carry copied variables and prefill. Courses
// the service does not know keep their dataset figures. Any other error
// aborts the run after the current batch.
func EnrichElevation(ctx context.Context, src ProfileSource, pages []page.Descriptor, opts scale.BatchOptions) ([]page.Descriptor, error) {
	enrich := func(ctx context.Context, d page.Descriptor) (page.Descriptor, error) {
		if !needsElevation(&d) {
			return d, nil
		}
		course := d.Variables.ShortName
		if course == "" {
			course = d.ShortName
		}
		prof, err := src.Profile(ctx, course)
		if errors.Is(err, elevation.ErrNotFound) {
			slog.Debug("No elevation profile for course", logfields.PageID(d.ID))
			return d, nil
		}
		if err != nil {
			return d, err
		}
		return withProfile(d, prof), nil
	}
	return scale.ProcessInBatches(ctx, pages, enrich, opts)
}

func withProfile(d page.Descriptor, p *elevation.Profile) page.Descriptor {
	vars := d.Variables.Clone()
	gain, loss := p.Gain, p.Loss
	vars.ElevationGain = &gain
	vars.ElevationLoss = &loss
	d.Variables = vars

	if d.Prefill != nil {
		prefill := make(map[string]string, len(d.Prefill)+2)
		for k, v := range d.Prefill {
			prefill[k] = v
		}
		prefill["gain"] = strconv.Itoa(gain)
		prefill["loss"] = strconv.Itoa(loss)
		d.Prefill = prefill
	}
	rerender(&d)
	return d
}

// rerender refreshes the generated text of a race or elevation page from its
// current variables, keyed by ID so phrasing choices stay the same.
func rerender(d *page.Descriptor) {
	switch d.Category {
	case page.CategoryRaceGuide:
		fromRendered(d, variation.Render(raceGuideTemplates, d.ID, d.Variables))
		d.FAQ = interpolateFAQ(raceFAQ, d.Variables)
		d.HowTo = interpolateHowTo(raceHowTo, d.Variables)
	case page.CategoryElevationTool:
		fromRendered(d, variation.Render(elevationTemplates, d.ID, d.Variables))
		d.FAQ = interpolateFAQ(elevationFAQ, d.Variables)
		d.HowTo = interpolateHowTo(elevationHowTo, d.Variables)
	case page.CategoryPaceTool, page.CategoryFuelTool, page.CategoryBlogPost:
	}
}
