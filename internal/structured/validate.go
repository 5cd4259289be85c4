package structured

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Problem is a schema minimum that a metadata document fails to meet.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) String() string { return p.Path + ": " + p.Message }

var (
	contextPath = jp.MustParseString(`$['@context']`)
	graphPath   = jp.MustParseString(`$['@graph']`)
	nodesPath   = jp.MustParseString(`$['@graph'][*]`)
	typePath    = jp.MustParseString(`$['@type']`)

	// required lists the property each block type must carry as a non-empty
	// value. Arrays must have at least one element.
	required = map[string][]string{
		string(KindFAQPage):        {"mainEntity"},
		string(KindHowTo):          {"step"},
		string(KindBreadcrumbList): {"itemListElement"},
		string(KindSportsEvent):    {"startDate", "location"},
		string(KindArticle):        {"headline"},
		string(KindBlogPosting):    {"headline"},
		string(KindWebPage):        {"url", "name"},
	}
	propertyPaths = func() map[string]jp.Expr {
		out := make(map[string]jp.Expr)
		for _, props := range required {
			for _, p := range props {
				out[p] = jp.C(p)
			}
		}
		return out
	}()
)

// ValidateGraph checks a rendered metadata document against the minimum
// property shapes. It never fails; malformed input is reported as a problem.
func ValidateGraph(raw []byte) []Problem {
	root, err := oj.Parse(raw)
	if err != nil {
		return []Problem{{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	var problems []Problem
	if ctx := contextPath.Get(root); len(ctx) == 0 || ctx[0] != schemaContext {
		problems = append(problems, Problem{Path: "$['@context']", Message: "missing schema.org context"})
	}
	graph := graphPath.Get(root)
	if len(graph) == 0 {
		return append(problems, Problem{Path: "$['@graph']", Message: "missing @graph"})
	}
	if _, ok := graph[0].([]any); !ok {
		return append(problems, Problem{Path: "$['@graph']", Message: "@graph must be an array"})
	}

	for i, node := range nodesPath.Get(root) {
		at := fmt.Sprintf("$['@graph'][%d]", i)
		types := typePath.Get(node)
		if len(types) == 0 {
			problems = append(problems, Problem{Path: at, Message: "node has no @type"})
			continue
		}
		kind, _ := types[0].(string)
		for _, prop := range required[kind] {
			vals := propertyPaths[prop].Get(node)
			if len(vals) == 0 || empty(vals[0]) {
				problems = append(problems, Problem{
					Path:    at + "." + prop,
					Message: fmt.Sprintf("%s requires non-empty %s", kind, prop),
				})
			}
		}
	}
	return problems
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
