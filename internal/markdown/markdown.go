package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Parse parses a Markdown fragment into a Goldmark AST.
func Parse(src []byte) gmast.Node {
	return md.Parser().Parse(text.NewReader(src))
}

// ExtractLinks parses a Markdown fragment and extracts link-like constructs
// in document order.
func ExtractLinks(src []byte) []Link {
	root := Parse(src)

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(src))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Text: inlineText(node, src)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Text: inlineText(node, src)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// InternalPaths returns the site-internal destinations of every link in src.
func InternalPaths(src string, opts Options) []string {
	if !strings.Contains(src, "](") && !strings.Contains(src, "<") {
		return nil
	}
	var out []string
	for _, l := range ExtractLinks([]byte(src)) {
		if l.Kind == LinkKindImage {
			continue
		}
		if p, ok := l.InternalPath(opts); ok {
			out = append(out, p)
		}
	}
	return out
}

// PlainText renders a Markdown fragment as whitespace-joined text with all
// markup, link destinations and code fences removed.
func PlainText(src string) string {
	if src == "" {
		return ""
	}
	source := []byte(src)
	root := Parse(source)

	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			if n.Kind() == gmast.KindParagraph || n.Kind() == gmast.KindHeading {
				b.WriteByte(' ')
			}
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.FencedCodeBlock, *gmast.CodeBlock, *gmast.HTMLBlock, *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		case *gmast.AutoLink:
			b.Write(node.Label(source))
		}
		return gmast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
		case *gmast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}
