package marathon

import (
	"log/slog"

	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Pages generates every non-hub descriptor for ds, grouped by section:
// pace goals, pacing guides, fuel plans, elevation pages, race guides, posts.
func Pages(ds *Dataset) []page.Descriptor {
	var out []page.Descriptor
	for _, g := range ds.Goals {
		dist, ok := ds.Distance(g.Distance)
		if !ok {
			continue
		}
		out = append(out, PaceGoal(g, dist))
	}
	out = append(out, PaceGuides()...)
	for _, dist := range ds.Distances {
		out = append(out, FuelPlan(dist))
	}
	for _, r := range ds.Races {
		out = append(out, ElevationPage(r))
	}
	for _, r := range ds.Races {
		out = append(out, RaceGuide(r))
	}
	out = append(out, BlogPosts()...)
	return out
}

// Build returns the hubs for ds and every page including the hub pages,
// hubs first.
func Build(ds *Dataset) ([]page.HubConfig, []page.Descriptor) {
	hubs := Hubs(ds)
	pages := make([]page.Descriptor, 0, len(hubs))
	for _, h := range hubs {
		pages = append(pages, h.Descriptor())
	}
	pages = append(pages, Pages(ds)...)
	return hubs, pages
}

// BuildCatalogue generates and indexes everything for ds.
func BuildCatalogue(ds *Dataset) (*page.Catalogue, *page.HubSet, error) {
	hubs, pages := Build(ds)
	set, err := page.NewHubSet(hubs...)
	if err != nil {
		return nil, nil, err
	}
	cat, err := page.NewCatalogue(pages)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Marathon catalogue built", logfields.Count(cat.Len()), slog.Int("hubs", len(hubs)))
	return cat, set, nil
}
