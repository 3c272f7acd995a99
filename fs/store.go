package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fwojciec/wikihtml"
)

// Ensure stores implement wikihtml.PageStore at compile time.
var (
	_ wikihtml.PageStore = (*FileStore)(nil)
	_ wikihtml.PageStore = (*BundleStore)(nil)
)

// markerName is written into every output directory. Commit only replaces
// an existing directory that carries it.
const markerName = ".wikihtml"

// stage is the temporary directory shared by both stores. Files are written
// to baseDir/name.tmp and moved to baseDir/name on Commit.
type stage struct {
	baseDir string
	name    string

	mu       sync.Mutex
	prepared bool
}

func (s *stage) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *stage) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// owned reports whether dir exists and was written by a stage. A missing
// dir is not owned.
func owned(dir string) (exists, ok bool, err error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, false, nil
	} else if err != nil {
		return false, false, err
	}
	if _, err := os.Stat(filepath.Join(dir, markerName)); os.IsNotExist(err) {
		return true, false, nil
	} else if err != nil {
		return true, false, err
	}
	return true, true, nil
}

// prepare creates the temp directory and its marker. A stale temp directory
// from an earlier run is cleared; any other directory in the way is left
// alone and reported as ECONFLICT.
func (s *stage) prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prepared {
		return nil
	}

	exists, ok, err := owned(s.tempDir())
	if err != nil {
		return err
	} else if exists && !ok {
		return wikihtml.Errorf(wikihtml.ECONFLICT, "%s exists and was not written by wikihtml", s.tempDir())
	} else if exists {
		if err := os.RemoveAll(s.tempDir()); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), markerName), nil, 0644); err != nil {
		return err
	}
	s.prepared = true
	return nil
}

// create writes a new file in the temp directory. Returns ECONFLICT if the
// file already exists.
func (s *stage) create(name, content string) error {
	if err := s.prepare(); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.tempDir(), name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return wikihtml.Errorf(wikihtml.ECONFLICT, "output file %s already exists", name)
	} else if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// commit moves the temp directory into place. An existing final directory
// is replaced only if it holds the marker.
func (s *stage) commit() error {
	exists, ok, err := owned(s.finalDir())
	if err != nil {
		return err
	} else if exists && !ok {
		return wikihtml.Errorf(wikihtml.ECONFLICT, "%s exists and was not written by wikihtml", s.finalDir())
	} else if exists {
		if err := os.RemoveAll(s.finalDir()); err != nil {
			return err
		}
	}
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	s.mu.Lock()
	s.prepared = false
	s.mu.Unlock()
	return nil
}

// abort removes the temp directory if this stage created it.
func (s *stage) abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.prepared {
		return nil
	}
	s.prepared = false
	return os.RemoveAll(s.tempDir())
}

// FileStore implements wikihtml.PageStore with one file per page and an
// index linking them, written on Commit.
type FileStore struct {
	stage
	site   string
	format string

	mu    sync.Mutex
	pages []*wikihtml.RenderedPage
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
func NewFileStore(baseDir, name, site, format string) *FileStore {
	return &FileStore{
		stage:  stage{baseDir: baseDir, name: name},
		site:   site,
		format: format,
	}
}

func (s *FileStore) Save(ctx context.Context, page *wikihtml.RenderedPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return err
	}

	var content string
	if s.format == wikihtml.FormatMarkdown {
		content = FormatMarkdownPage(page)
	} else {
		content = FormatHTMLPage(s.site, page)
	}
	if err := s.create(page.FileName+Extension(s.format), content); err != nil {
		return err
	}

	s.mu.Lock()
	s.pages = append(s.pages, page)
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Commit() error {
	s.mu.Lock()
	pages := sortedPages(s.pages)
	s.mu.Unlock()

	if err := s.create(IndexName+Extension(s.format), FormatIndex(s.site, s.format, pages)); err != nil {
		return err
	}
	return s.commit()
}

func (s *FileStore) Abort() error {
	return s.abort()
}

// BundleStore implements wikihtml.PageStore with a single index document
// holding every page. Pages are kept in memory until Commit.
type BundleStore struct {
	stage
	site   string
	format string

	mu    sync.Mutex
	pages []*wikihtml.RenderedPage
	names map[string]bool
}

// NewBundleStore creates a new BundleStore.
// baseDir is the parent directory, name is the output directory name.
func NewBundleStore(baseDir, name, site, format string) *BundleStore {
	return &BundleStore{
		stage:  stage{baseDir: baseDir, name: name},
		site:   site,
		format: format,
		names:  make(map[string]bool),
	}
}

func (s *BundleStore) Save(ctx context.Context, page *wikihtml.RenderedPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names[page.FileName] {
		return wikihtml.Errorf(wikihtml.ECONFLICT, "page %s already saved", page.FileName)
	}
	s.names[page.FileName] = true
	s.pages = append(s.pages, page)
	return nil
}

func (s *BundleStore) Commit() error {
	s.mu.Lock()
	pages := sortedPages(s.pages)
	s.mu.Unlock()

	if err := s.create(IndexName+Extension(s.format), FormatBundle(s.site, s.format, pages)); err != nil {
		return err
	}
	return s.commit()
}

func (s *BundleStore) Abort() error {
	s.mu.Lock()
	s.pages = nil
	s.mu.Unlock()
	return s.abort()
}

func sortedPages(pages []*wikihtml.RenderedPage) []*wikihtml.RenderedPage {
	sorted := slices.Clone(pages)
	slices.SortStableFunc(sorted, func(a, b *wikihtml.RenderedPage) int {
		return a.Position - b.Position
	})
	return sorted
}
