// Package catalog loads hand-authored page descriptors and hub definitions
// from YAML files on disk.
package catalog

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/page"
)

// File is the shape of one YAML document in a catalogue file. A file may hold
// several documents separated by "---".
type File struct {
	Hubs  []page.HubConfig  `yaml:"hubs,omitempty"`
	Pages []page.Descriptor `yaml:"pages,omitempty"`
}

// Result is everything loaded from a set of directories, in file order.
type Result struct {
	Hubs  []page.HubConfig
	Pages []page.Descriptor
	Files []string
}

// IsCatalogueFile reports whether name looks like a descriptor file.
func IsCatalogueFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Load scans every directory recursively for YAML descriptor files. Files are
// read in lexical path order so repeated loads produce the same catalogue.
func Load(dirs []string) (*Result, error) {
	res := &Result{}
	for _, dir := range dirs {
		files, err := discover(dir)
		if err != nil {
			return nil, seoerrors.CatalogueLoad(dir, err)
		}
		for _, f := range files {
			if err := res.loadFile(f); err != nil {
				return nil, err
			}
		}
	}
	slog.Debug("Catalogue files loaded",
		logfields.Count(len(res.Files)),
		slog.Int("pages", len(res.Pages)),
		slog.Int("hubs", len(res.Hubs)))
	return res, nil
}

func discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsCatalogueFile(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (r *Result) loadFile(path string) error {
	// #nosec G304 -- path comes from walking operator-configured directories
	fh, err := os.Open(path)
	if err != nil {
		return seoerrors.CatalogueLoad(path, err)
	}
	defer func() { _ = fh.Close() }()

	hubs, pages, err := Decode(fh)
	if err != nil {
		return seoerrors.CatalogueLoad(path, err)
	}
	for i := range pages {
		pages[i].Source = path
	}
	r.Hubs = append(r.Hubs, hubs...)
	r.Pages = append(r.Pages, pages...)
	r.Files = append(r.Files, path)
	return nil
}

// Decode reads every YAML document from rd. Unknown keys are rejected so
// typos in descriptor files surface at load time.
func Decode(rd io.Reader) ([]page.HubConfig, []page.Descriptor, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)

	var (
		hubs  []page.HubConfig
		pages []page.Descriptor
	)
	for {
		var doc File
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		hubs = append(hubs, doc.Hubs...)
		pages = append(pages, doc.Pages...)
	}
	return hubs, pages, nil
}
