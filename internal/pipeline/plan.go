package pipeline

import (
	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
	"git.home.luguber.info/inful/seobuilder/internal/scale"
	"git.home.luguber.info/inful/seobuilder/internal/structured"
)

// BuildPlan is an immutable execution plan derived from config.
// It captures normalized inputs and knobs for the pipeline stages.
type BuildPlan struct {
	Config  *config.Config
	Command string

	Site         structured.Site
	Directories  []string
	Marathon     bool
	MarathonData string
	GitLastmod   bool

	Rules       quality.Rules
	Partitioned bool
	EnforceGate bool

	Chunks     scale.ChunkOptions
	MaxURLs    int
	BatchSize  int
	CleanOut   bool
	OutputDir  string
	WritePages bool
}

// BuildPlanBuilder constructs a BuildPlan from config plus command overrides.
type BuildPlanBuilder struct {
	plan BuildPlan
}

// NewBuildPlanBuilder creates a builder with base config.
func NewBuildPlanBuilder(cfg *config.Config) *BuildPlanBuilder {
	if cfg == nil {
		cfg = config.Default()
	}
	return &BuildPlanBuilder{plan: BuildPlan{Config: cfg, WritePages: true}}
}

// WithCommand names the CLI command the plan runs for. It is recorded in
// run history and published events.
func (b *BuildPlanBuilder) WithCommand(name string) *BuildPlanBuilder {
	b.plan.Command = name
	return b
}

// WithOutput overrides the output directory and clean flag.
func (b *BuildPlanBuilder) WithOutput(dir string, clean bool) *BuildPlanBuilder {
	b.plan.OutputDir = dir
	b.plan.CleanOut = clean
	return b
}

// WithGate makes a failed pre-publish gate stop the run before any chunk or
// artifact is produced.
func (b *BuildPlanBuilder) WithGate(enforce bool) *BuildPlanBuilder {
	b.plan.EnforceGate = enforce
	return b
}

// WithPageFiles toggles the per-page JSON artifacts.
func (b *BuildPlanBuilder) WithPageFiles(enabled bool) *BuildPlanBuilder {
	b.plan.WritePages = enabled
	return b
}

// ResolveSources copies catalogue source selection from config.
func (b *BuildPlanBuilder) ResolveSources() *BuildPlanBuilder {
	c := b.plan.Config.Catalog
	b.plan.Directories = append([]string(nil), c.Directories...)
	b.plan.Marathon = c.Marathon
	b.plan.MarathonData = c.MarathonData
	b.plan.GitLastmod = c.GitLastmod
	return b
}

// ResolveSite maps the site section onto the metadata generator's input.
func (b *BuildPlanBuilder) ResolveSite() *BuildPlanBuilder {
	s := b.plan.Config.Site
	b.plan.Site = structured.Site{
		Name:          s.Name,
		BaseURL:       s.BaseURL,
		Logo:          s.Logo,
		DefaultImage:  s.DefaultImage,
		TwitterHandle: s.TwitterHandle,
		Locale:        s.Locale,
	}
	return b
}

// ResolveRules maps validation thresholds onto quality rules. The site name
// doubles as the brand excluded from key phrases.
func (b *BuildPlanBuilder) ResolveRules() *BuildPlanBuilder {
	v := b.plan.Config.Validation
	rules := quality.DefaultRules()
	rules.TitleMin = v.TitleMin
	rules.TitleMax = v.TitleMax
	rules.DescriptionMin = v.DescriptionMin
	rules.DescriptionMax = v.DescriptionMax
	rules.MinBenefits = v.MinBenefits
	rules.MaxBenefits = v.MaxBenefits
	rules.ShortIntro = v.ShortIntro
	rules.ThinIntro = v.ThinIntro
	rules.ShortFAQAnswer = v.ShortFAQAnswer
	rules.SimilarityThreshold = v.SimilarityThreshold
	rules.MaxConflicts = v.MaxConflicts
	rules.Brand = b.plan.Config.Site.Name
	rules.SiteURL = b.plan.Config.Site.BaseURL
	b.plan.Rules = rules
	b.plan.Partitioned = v.Partitioned
	return b
}

// ResolveOutput copies chunking, sitemap and batching limits from config.
// Explicit WithOutput values win.
func (b *BuildPlanBuilder) ResolveOutput() *BuildPlanBuilder {
	o := b.plan.Config.Output
	if b.plan.OutputDir == "" {
		b.plan.OutputDir = o.Directory
		b.plan.CleanOut = o.Clean
	}
	b.plan.Chunks = scale.ChunkOptions{MaxPerChunk: o.MaxPerChunk, ByCategory: o.ChunkByCategory}
	b.plan.MaxURLs = o.MaxURLsPerSitemap
	b.plan.BatchSize = b.plan.Config.Batch.Size
	return b
}

// Build returns the finalized BuildPlan.
func (b *BuildPlanBuilder) Build() BuildPlan {
	return b.plan
}

// PlanFromConfig resolves every section of cfg for command.
func PlanFromConfig(cfg *config.Config, command string) BuildPlan {
	return NewBuildPlanBuilder(cfg).
		WithCommand(command).
		ResolveSources().
		ResolveSite().
		ResolveRules().
		ResolveOutput().
		Build()
}
