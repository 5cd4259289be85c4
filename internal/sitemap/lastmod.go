package sitemap

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// LastmodResolver supplies the last-modified time of a page.
type LastmodResolver interface {
	Lastmod(d *page.Descriptor) time.Time
}

// FixedTime stamps every page with the same time.
type FixedTime time.Time

func (f FixedTime) Lastmod(*page.Descriptor) time.Time { return time.Time(f) }

// GitLastmod uses the committer time of the latest commit touching a
// descriptor's source file. Pages without a source, outside the repository
// or with no history fall back to Fallback.
type GitLastmod struct {
	repo     *git.Repository
	root     string
	Fallback time.Time

	mu    sync.Mutex
	cache map[string]time.Time
}

// NewGitLastmod opens the repository containing dir.
func NewGitLastmod(dir string, fallback time.Time) (*GitLastmod, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	return &GitLastmod{
		repo:     repo,
		root:     wt.Filesystem.Root(),
		Fallback: fallback,
		cache:    make(map[string]time.Time),
	}, nil
}

func (g *GitLastmod) Lastmod(d *page.Descriptor) time.Time {
	if d.Source == "" {
		return g.Fallback
	}
	abs, err := filepath.Abs(d.Source)
	if err != nil {
		return g.Fallback
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return g.Fallback
	}
	rel = filepath.ToSlash(rel)

	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.cache[rel]; ok {
		return t
	}
	t := g.lookup(rel)
	g.cache[rel] = t
	return t
}

func (g *GitLastmod) lookup(rel string) time.Time {
	iter, err := g.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		slog.Debug("git log failed", logfields.Path(rel), logfields.Error(err))
		return g.Fallback
	}
	defer iter.Close()
	c, err := iter.Next()
	if err != nil || c == nil {
		return g.Fallback
	}
	return c.Committer.When.UTC()
}
