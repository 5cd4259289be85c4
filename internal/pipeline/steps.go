package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"git.home.luguber.info/inful/seobuilder/internal/catalog"
	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/marathon"
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
	"git.home.luguber.info/inful/seobuilder/internal/relevance"
	"git.home.luguber.info/inful/seobuilder/internal/scale"
	"git.home.luguber.info/inful/seobuilder/internal/sitemap"
	"git.home.luguber.info/inful/seobuilder/internal/structured"
)

// PageMetadata is the discovery and structured-data output for one page.
type PageMetadata struct {
	ID          string            `json:"id"`
	Path        string            `json:"path"`
	Head        map[string]any    `json:"head"`
	Breadcrumbs []relevance.Crumb `json:"breadcrumbs"`
	JSONLD      json.RawMessage   `json:"jsonLd"`
	Problems    []string          `json:"problems,omitempty"`
}

// PageArtifact is the per-page JSON file a front end renders from.
type PageArtifact struct {
	Page     page.Descriptor     `json:"page"`
	Links    []page.InternalLink `json:"links"`
	Metadata *PageMetadata       `json:"metadata,omitempty"`
	Hub      *page.HubConfig     `json:"hub,omitempty"`
	Score    *quality.PageResult `json:"quality,omitempty"`
}

func (p *Pipeline) load(_ context.Context, st *runState) error {
	if !p.plan.Marathon && len(p.plan.Directories) == 0 {
		return seoerrors.ConfigRequired("catalog.directories or catalog.marathon")
	}

	if p.plan.Marathon {
		ds, err := p.dataset()
		if err != nil {
			return err
		}
		hubs, pages := marathon.Build(ds)
		st.hubConfigs = append(st.hubConfigs, hubs...)
		st.pages = append(st.pages, pages...)
		slog.Info("Marathon dataset loaded",
			slog.Int("races", len(ds.Races)),
			slog.Int("distances", len(ds.Distances)),
			slog.Int("goals", len(ds.Goals)),
			logfields.Count(len(pages)))
	}

	if len(p.plan.Directories) > 0 {
		res, err := catalog.Load(p.plan.Directories)
		if err != nil {
			return err
		}
		for _, h := range res.Hubs {
			st.pages = append(st.pages, h.Descriptor())
		}
		st.hubConfigs = append(st.hubConfigs, res.Hubs...)
		st.pages = append(st.pages, res.Pages...)
		slog.Info("Catalogue files loaded",
			slog.Int("files", len(res.Files)),
			logfields.Count(len(res.Pages)+len(res.Hubs)))
	}
	return nil
}

func (p *Pipeline) dataset() (*marathon.Dataset, error) {
	if p.plan.MarathonData != "" {
		return marathon.LoadFile(p.plan.MarathonData)
	}
	return marathon.Embedded()
}

func (p *Pipeline) enrich(ctx context.Context, st *runState) error {
	if p.profiles == nil {
		slog.Debug("Elevation enrichment disabled", logfields.Stage(string(StageEnrich)))
		return nil
	}
	pages, err := marathon.EnrichElevation(ctx, p.profiles, st.pages, p.batchOptions(StageEnrich))
	if err != nil {
		return err
	}
	st.pages = pages
	return nil
}

func (p *Pipeline) index(_ context.Context, st *runState) error {
	cat, err := page.NewCatalogue(st.pages)
	if err != nil {
		return err
	}
	hubs, err := page.NewHubSet(st.hubConfigs...)
	if err != nil {
		return seoerrors.CatalogueInvariant([]string{err.Error()})
	}
	st.catalogue = cat
	st.hubs = hubs
	st.pages = cat.All()
	st.engine = relevance.NewEngine(cat, hubs, relevance.DefaultOptions())

	for _, c := range cat.Categories() {
		n := len(cat.ByCategory(c))
		p.recorder.AddPagesProcessed(string(c), n)
		slog.Debug("Category indexed", logfields.Category(string(c)), logfields.Count(n))
	}
	st.result.Pages = st.pages
	st.result.Hubs = hubs
	return nil
}

func (p *Pipeline) link(_ context.Context, st *runState) error {
	st.result.Links = st.engine.LinkGraph()
	total := 0
	for _, links := range st.result.Links {
		total += len(links)
	}
	slog.Info("Internal links derived", slog.Int("pages", len(st.result.Links)), logfields.Count(total))
	return nil
}

func (p *Pipeline) metadata(ctx context.Context, st *runState) error {
	hubs := st.hubs
	gen := structured.NewGenerator(p.plan.Site, hubs, func(d *page.Descriptor) []relevance.Crumb {
		return relevance.Breadcrumbs(hubs, d)
	})

	build := func(_ context.Context, d page.Descriptor) (PageMetadata, error) {
		graph := gen.BuildGraph(&d, p.graphOptions(&d, hubs, st.start))
		raw, err := json.Marshal(graph)
		if err != nil {
			return PageMetadata{}, fmt.Errorf("marshal structured data for %s: %w", d.ID, err)
		}
		md := PageMetadata{
			ID:          d.ID,
			Path:        d.Path,
			Head:        gen.Tags(&d).Head(),
			Breadcrumbs: relevance.Breadcrumbs(hubs, &d),
			JSONLD:      raw,
		}
		for _, prob := range structured.ValidateGraph(raw) {
			md.Problems = append(md.Problems, prob.String())
		}
		return md, nil
	}

	all, err := scale.ProcessInBatches(ctx, st.pages, build, p.batchOptions(StageMetadata))
	if err != nil {
		return err
	}

	out := make(map[string]PageMetadata, len(all))
	problems := 0
	for _, md := range all {
		out[md.ID] = md
		if len(md.Problems) > 0 {
			problems += len(md.Problems)
			slog.Warn("Structured data incomplete", logfields.PageID(md.ID), slog.Any("problems", md.Problems))
		}
	}
	if problems > 0 {
		st.warning = true
	}
	st.result.Metadata = out
	return nil
}

func (p *Pipeline) graphOptions(d *page.Descriptor, hubs *page.HubSet, now time.Time) structured.Options {
	opts := structured.Options{IncludeSite: hubs.IsHub(d)}
	switch d.Category {
	case page.CategoryRaceGuide:
		opts.Event = eventFacts(d)
	case page.CategoryBlogPost:
		opts.Article = &structured.ArticleFacts{
			Published: now,
			Modified:  now,
			Keywords:  relevance.Labels(relevance.TopicSet(d)),
		}
		if hub, ok := hubs.ForCategory(d.Category); ok {
			opts.Article.Section = hub.Title
		}
	case page.CategoryPaceTool, page.CategoryFuelTool, page.CategoryElevationTool:
		opts.IncludeSoftware = !opts.IncludeSite
	}
	return opts
}

// eventFacts derives SportsEvent data from a race page's variables. Pages
// without an event name or a parseable date get no event block.
func eventFacts(d *page.Descriptor) *structured.EventFacts {
	v := d.Variables
	if v == nil || v.EventName == "" {
		return nil
	}
	start, err := time.Parse(time.DateOnly, v.EventDate)
	if err != nil {
		return nil
	}
	ev := &structured.EventFacts{
		Name:      v.EventName,
		StartDate: start,
		City:      v.City,
		Country:   v.Country,
	}
	if site, ok := v.Lookup("website"); ok {
		ev.URL = site
	}
	return ev
}

func (p *Pipeline) validate(_ context.Context, st *runState) error {
	hubs, hubErr := page.NewHubSet(st.hubConfigs...)
	if hubErr != nil {
		hubs = nil
	}

	v := quality.New(p.plan.Rules)
	var batch *quality.BatchResult
	if p.plan.Partitioned {
		batch = v.ValidateAllPartitioned(st.pages, hubs)
	} else {
		batch = v.ValidateAll(st.pages, hubs)
	}
	gate := v.Gate(st.pages, hubs)
	if hubErr != nil {
		gate.Passed = false
		gate.Blocking = append(gate.Blocking, hubErr.Error())
	}
	report := quality.Report(batch)

	p.recorder.AddIssues(quality.SeverityError.String(), batch.ErrorCount())
	p.recorder.AddIssues(quality.SeverityWarning.String(), batch.WarningCount())
	p.recorder.SetAverageScore(batch.AverageScore)
	p.recorder.IncGateOutcome(gate.Passed)

	if st.result.Pages == nil {
		st.result.Pages = st.pages
	}
	st.result.Batch = batch
	st.result.Gate = &gate
	st.result.Report = &report
	st.warning = batch.WarningCount() > 0 || len(gate.Warnings) > 0

	slog.Info("Catalogue validated",
		logfields.Count(batch.Total),
		slog.Int("valid", batch.ValidCount),
		slog.Int("invalid", batch.InvalidCount),
		logfields.Score(batch.AverageScore),
		slog.String("grade", string(report.Grade)),
		slog.Bool("gate_passed", gate.Passed))

	if p.plan.EnforceGate && !gate.Passed {
		return seoerrors.GateFailed(gate.Blocking)
	}
	return nil
}

func chunkPath(c scale.Chunk) string {
	return path.Join("chunks", c.ID+".yaml")
}

func (p *Pipeline) chunk(_ context.Context, st *runState) error {
	chunks := scale.Split(st.pages, p.plan.Chunks)
	m := scale.NewManifest(st.start)
	for _, c := range chunks {
		if err := m.AddChunk(c, chunkPath(c)); err != nil {
			return err
		}
		slog.Debug("Chunk planned", logfields.ChunkID(c.ID), logfields.Count(len(c.Pages)))
	}
	st.result.Chunks = chunks
	st.result.Manifest = m
	return nil
}

func (p *Pipeline) sitemap(_ context.Context, st *runState) error {
	hubs := st.hubs
	b := sitemap.Builder{
		BaseURL:    p.plan.Site.BaseURL,
		Lastmod:    p.lastmod(st.start),
		Priority:   func(d *page.Descriptor) float64 { return relevance.SitemapPriority(hubs, d) },
		ChangeFreq: func(d *page.Descriptor) string { return relevance.ChangeFreq(hubs, d) },
	}
	urls := sitemap.FromPages(st.pages, b)
	files, err := sitemap.Generate(urls, sitemap.Options{
		MaxURLs:   p.plan.MaxURLs,
		BaseURL:   p.plan.Site.BaseURL,
		Generated: st.start,
	})
	if err != nil {
		return err
	}
	st.result.Sitemaps = files
	slog.Info("Sitemap generated", slog.Int("urls", len(urls)), slog.Int("files", len(files)))
	return nil
}

func (p *Pipeline) lastmod(fallback time.Time) sitemap.LastmodResolver {
	if p.plan.GitLastmod {
		gl, err := sitemap.NewGitLastmod(".", fallback)
		if err == nil {
			return gl
		}
		slog.Warn("Git lastmod unavailable, using build time", logfields.Error(err))
	}
	return sitemap.FixedTime(fallback)
}

func (p *Pipeline) write(_ context.Context, st *runState) error {
	if p.writer == nil {
		slog.Info("No artifact writer configured, skipping write",
			slog.Int("chunks", len(st.result.Chunks)),
			slog.Int("sitemaps", len(st.result.Sitemaps)))
		return nil
	}
	w := p.writer
	if p.plan.CleanOut {
		if err := w.Clean(); err != nil {
			return err
		}
	}

	for _, c := range st.result.Chunks {
		if err := w.WriteYAML(chunkPath(c), c); err != nil {
			return err
		}
	}

	if p.plan.WritePages && (st.result.Links != nil || st.result.Metadata != nil) {
		if err := p.writePages(st); err != nil {
			return err
		}
	}

	m := st.result.Manifest
	if m == nil {
		m = scale.NewManifest(st.start)
		st.result.Manifest = m
	}
	for _, f := range st.result.Sitemaps {
		if err := w.WriteFile(f.Name, f.Content); err != nil {
			return err
		}
		m.Sitemaps = append(m.Sitemaps, f.Name)
	}

	if rep := st.result.CIReport(); rep != nil {
		if err := w.WriteJSON("report.json", rep); err != nil {
			return err
		}
	}

	m.Finish("completed", p.now().Sub(st.start))
	data, err := m.ToJSON()
	if err != nil {
		return seoerrors.ArtifactWrite("manifest.json", err)
	}
	if err := w.WriteFile("manifest.json", data); err != nil {
		return err
	}

	st.result.Written = w.Written()
	slog.Info("Artifacts written",
		logfields.Path(w.Filesystem().Root()),
		logfields.Count(len(st.result.Written)),
		slog.Int("bytes", w.BytesWritten()))
	return nil
}

func (p *Pipeline) writePages(st *runState) error {
	scores := make(map[string]*quality.PageResult)
	if st.result.Batch != nil {
		for i := range st.result.Batch.Pages {
			r := &st.result.Batch.Pages[i]
			scores[r.PageID] = r
		}
	}
	for i := range st.pages {
		d := st.pages[i]
		art := PageArtifact{Page: d, Links: st.result.Links[d.ID], Score: scores[d.ID]}
		if md, ok := st.result.Metadata[d.ID]; ok {
			art.Metadata = &md
		}
		if hub, ok := st.hubs.ByID(d.ID); ok {
			art.Hub = &hub
		}
		name := path.Join("pages", string(d.Category), d.ShortName+".json")
		if err := p.writer.WriteJSON(name, art); err != nil {
			return err
		}
	}
	return nil
}

// batchOptions reports each completed batch to the recorder and the log.
func (p *Pipeline) batchOptions(stage StageName) scale.BatchOptions {
	last := time.Now()
	done := 0
	return scale.BatchOptions{
		Size: p.plan.BatchSize,
		OnBatch: func(bp scale.BatchProgress) {
			now := time.Now()
			p.recorder.ObserveBatch(bp.Completed-done, now.Sub(last))
			slog.Debug("Batch completed",
				logfields.Stage(string(stage)),
				logfields.Batch(bp.Index),
				slog.Int("completed", bp.Completed),
				slog.Int("total", bp.Total))
			last, done = now, bp.Completed
		},
	}
}
