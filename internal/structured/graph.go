package structured

import (
	"encoding/json"

	"git.home.luguber.info/inful/seobuilder/internal/page"
)

const schemaContext = "https://schema.org"

// Graph is an ordered set of blocks rendered inside one @graph envelope.
type Graph []Block

// MarshalJSON renders {"@context": ..., "@graph": [...]}.
func (g Graph) MarshalJSON() ([]byte, error) {
	nodes := make([]Block, len(g))
	copy(nodes, g)
	return json.Marshal(struct {
		Context string  `json:"@context"`
		Graph   []Block `json:"@graph"`
	}{Context: schemaContext, Graph: nodes})
}

// Kinds lists the block kinds in graph order.
func (g Graph) Kinds() []Kind {
	out := make([]Kind, len(g))
	for i, b := range g {
		out[i] = b.BlockKind()
	}
	return out
}

// Options selects the optional blocks of a graph.
type Options struct {
	Event           *EventFacts
	Article         *ArticleFacts
	IncludeSite     bool
	IncludeSoftware bool
}

// BuildGraph composes the blocks relevant to d in fixed order: WebPage,
// BreadcrumbList, FAQPage, HowTo, SportsEvent, Article, SoftwareApplication,
// Organization, WebSite. Blocks without data are omitted.
func (g *Generator) BuildGraph(d *page.Descriptor, opts Options) Graph {
	graph := Graph{g.WebPage(d), g.Breadcrumbs(d)}
	if faq := g.FAQ(d); faq != nil {
		graph = append(graph, faq)
	}
	if howTo := g.HowTo(d); howTo != nil {
		graph = append(graph, howTo)
	}
	if opts.Event != nil {
		graph = append(graph, g.SportsEvent(d, *opts.Event))
	}
	if opts.Article != nil {
		graph = append(graph, g.Article(d, *opts.Article))
	}
	if opts.IncludeSoftware {
		if app := g.SoftwareApplication(d); app != nil {
			graph = append(graph, app)
		}
	}
	if opts.IncludeSite {
		graph = append(graph, g.Organization(), g.WebSite())
	}
	return graph
}
