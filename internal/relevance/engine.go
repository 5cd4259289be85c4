package relevance

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// Options filter and bound FindRelated.
type Options struct {
	Limit            int
	MinRelevance     float64
	SameCategoryOnly bool
	ExcludeIDs       []string
}

// DefaultOptions returns the related-page defaults.
func DefaultOptions() Options {
	return Options{Limit: 5, MinRelevance: 0.1}
}

// Engine scores descriptors against a fixed candidate pool. Topic sets are
// computed once at construction and are read-only afterwards, so an Engine is
// safe for concurrent reads.
type Engine struct {
	catalogue *page.Catalogue
	hubs      *page.HubSet
	pool      []page.Descriptor
	topics    map[string]*roaring.Bitmap
	opts      Options
}

// NewEngine indexes the catalogue as the candidate pool.
func NewEngine(c *page.Catalogue, hubs *page.HubSet, opts Options) *Engine {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}
	e := &Engine{
		catalogue: c,
		hubs:      hubs,
		pool:      c.All(),
		topics:    make(map[string]*roaring.Bitmap, c.Len()),
		opts:      opts,
	}
	for i := range e.pool {
		e.topics[e.pool[i].ID] = TopicSet(&e.pool[i])
	}
	return e
}

func (e *Engine) topicSet(d *page.Descriptor) *roaring.Bitmap {
	if bm, ok := e.topics[d.ID]; ok {
		return bm
	}
	return TopicSet(d)
}

// Relevance scores a and b using cached topic sets where available.
func (e *Engine) Relevance(a, b *page.Descriptor) float64 {
	return score(a.Category == b.Category, e.topicSet(a), e.topicSet(b))
}

type scored struct {
	idx   int
	score float64
}

// FindRelated ranks the pool against d. Ties keep catalogue order.
func (e *Engine) FindRelated(d *page.Descriptor, opts Options) []page.InternalLink {
	if opts.Limit <= 0 {
		opts.Limit = e.opts.Limit
	}
	excluded := make(map[string]bool, len(opts.ExcludeIDs)+1)
	excluded[d.ID] = true
	for _, id := range opts.ExcludeIDs {
		excluded[id] = true
	}

	self := e.topicSet(d)
	var candidates []scored
	for i := range e.pool {
		c := &e.pool[i]
		if excluded[c.ID] {
			continue
		}
		if opts.SameCategoryOnly && c.Category != d.Category {
			continue
		}
		s := score(c.Category == d.Category, self, e.topics[c.ID])
		if s < opts.MinRelevance {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}

	links := make([]page.InternalLink, 0, len(candidates))
	for _, c := range candidates {
		s := c.score
		links = append(links, page.LinkTo(&e.pool[c.idx], &s))
	}
	return links
}

// HubLinks lists the spokes a hub declares, skipping identifiers that are not
// in the catalogue.
func (e *Engine) HubLinks(hub page.HubConfig) []page.InternalLink {
	var links []page.InternalLink
	for _, id := range hub.SpokeIDs() {
		d, ok := e.catalogue.Get(id)
		if !ok {
			continue
		}
		links = append(links, page.LinkTo(d, nil))
	}
	return links
}

// SpokeLinks is the parent hub link followed by related same-category pages.
func (e *Engine) SpokeLinks(d *page.Descriptor) []page.InternalLink {
	var links []page.InternalLink
	exclude := []string{}
	if hub, ok := e.hubs.ForCategory(d.Category); ok {
		exclude = append(exclude, hub.ID)
		if hd, found := e.catalogue.Get(hub.ID); found {
			links = append(links, page.LinkTo(hd, nil))
		} else {
			links = append(links, page.InternalLink{TargetID: hub.ID, TargetPath: hub.Path, Title: hub.Title})
		}
	}
	opts := e.opts
	opts.SameCategoryOnly = true
	opts.ExcludeIDs = append(exclude, opts.ExcludeIDs...)
	return append(links, e.FindRelated(d, opts)...)
}

// LinkGraph computes outgoing links for every descriptor in the catalogue.
// Hubs link to their spokes; every other page gets SpokeLinks.
func (e *Engine) LinkGraph() map[string][]page.InternalLink {
	graph := make(map[string][]page.InternalLink, len(e.pool))
	for i := range e.pool {
		d := &e.pool[i]
		if hub, ok := e.hubs.ByID(d.ID); ok {
			graph[d.ID] = e.HubLinks(hub)
			continue
		}
		graph[d.ID] = e.SpokeLinks(d)
	}
	return graph
}
