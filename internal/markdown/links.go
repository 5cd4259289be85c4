package markdown

import (
	"net/url"
	"strings"
)

// Options controls how Markdown fragments are analysed.
type Options struct {
	// SiteURL is the canonical base URL. Absolute links on the same host are
	// treated as site-internal.
	SiteURL string
}

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is a link-like construct found in a Markdown fragment.
type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
}

// InternalPath returns the site path a link points to, or false for external,
// fragment-only and non-http links.
func (l Link) InternalPath(opts Options) (string, bool) {
	dest := strings.TrimSpace(l.Destination)
	if dest == "" || strings.HasPrefix(dest, "#") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return "", false
	}
	switch {
	case u.Scheme == "" && u.Host == "":
		if !strings.HasPrefix(u.Path, "/") {
			return "", false
		}
	case u.Scheme == "http" || u.Scheme == "https":
		if opts.SiteURL == "" {
			return "", false
		}
		base, err := url.Parse(opts.SiteURL)
		if err != nil || !strings.EqualFold(base.Host, u.Host) {
			return "", false
		}
	default:
		return "", false
	}
	return NormalizePath(u.Path), true
}

// NormalizePath strips a trailing slash so "/races/berlin/" and
// "/races/berlin" compare equal. The root path is kept as "/".
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
