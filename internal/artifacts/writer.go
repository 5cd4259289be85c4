// Package artifacts writes build outputs (chunk files, sitemaps, manifest,
// per-page metadata) to a billy filesystem rooted at the output directory.
package artifacts

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
)

const filePerm os.FileMode = 0o644

// Writer records every file it writes so callers can list the artifact set.
type Writer struct {
	fs      billy.Filesystem
	mu      sync.Mutex
	written map[string]int
}

// New wraps an existing filesystem.
func New(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs, written: make(map[string]int)}
}

// NewOS writes below dir on the local disk.
func NewOS(dir string) *Writer {
	return New(osfs.New(dir))
}

// NewMemory writes to an in-memory filesystem, for dry runs and tests.
func NewMemory() *Writer {
	return New(memfs.New())
}

// Filesystem exposes the underlying filesystem.
func (w *Writer) Filesystem() billy.Filesystem { return w.fs }

// Clean removes everything below the root, leaving the root itself.
func (w *Writer) Clean() error {
	entries, err := w.fs.ReadDir("/")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return seoerrors.ArtifactWrite(w.fs.Root(), err)
	}
	for _, e := range entries {
		if err := util.RemoveAll(w.fs, e.Name()); err != nil {
			return seoerrors.ArtifactWrite(e.Name(), err)
		}
	}
	w.mu.Lock()
	w.written = make(map[string]int)
	w.mu.Unlock()
	return nil
}

// WriteFile writes data to name, creating parent directories.
func (w *Writer) WriteFile(name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return seoerrors.ArtifactWrite(name, err)
		}
	}
	if err := util.WriteFile(w.fs, name, data, filePerm); err != nil {
		return seoerrors.ArtifactWrite(name, err)
	}
	w.mu.Lock()
	w.written[name] = len(data)
	w.mu.Unlock()
	return nil
}

// WriteJSON writes v as indented JSON.
func (w *Writer) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return seoerrors.ArtifactWrite(name, err)
	}
	return w.WriteFile(name, append(data, '\n'))
}

// WriteYAML writes v as YAML.
func (w *Writer) WriteYAML(name string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return seoerrors.ArtifactWrite(name, err)
	}
	if err := enc.Close(); err != nil {
		return seoerrors.ArtifactWrite(name, err)
	}
	return w.WriteFile(name, buf.Bytes())
}

// ReadFile reads a previously written artifact.
func (w *Writer) ReadFile(name string) ([]byte, error) {
	f, err := w.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Written lists written files in lexical order.
func (w *Writer) Written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.written))
	for name := range w.written {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BytesWritten is the total size of all written files.
func (w *Writer) BytesWritten() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	total := 0
	for _, n := range w.written {
		total += n
	}
	return total
}
