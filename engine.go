package sharon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jward/sharon/internal/identity"
	"github.com/jward/sharon/internal/lang"
	"github.com/jward/sharon/internal/metrics"
	"github.com/jward/sharon/internal/store"
)

// Engine orchestrates a conversion run: file discovery, identity
// assignment, parallel conversion, and export of the filemap.
type Engine struct {
	store     *store.Store
	outDir    string
	jobs      int
	indent    int
	newline   string
	languages map[lang.Dialect]bool // nil means all dialects
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutputDir sets the directory that receives the documents. Required.
func WithOutputDir(dir string) Option {
	return func(e *Engine) {
		e.outDir = dir
	}
}

// WithJobs bounds the number of files converted concurrently. Values below
// one select GOMAXPROCS.
func WithJobs(n int) Option {
	return func(e *Engine) {
		e.jobs = n
	}
}

// WithIndent sets the number of spaces per nesting level in documents.
func WithIndent(width int) Option {
	return func(e *Engine) {
		e.indent = width
	}
}

// WithLineSeparator overrides the platform line separator in documents.
func WithLineSeparator(sep string) Option {
	return func(e *Engine) {
		e.newline = sep
	}
}

// WithLanguages restricts which dialects the Engine will process.
func WithLanguages(dialects ...lang.Dialect) Option {
	return func(e *Engine) {
		e.languages = make(map[lang.Dialect]bool, len(dialects))
		for _, d := range dialects {
			e.languages[d] = true
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records run metrics on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// New creates an Engine backed by a SQLite filemap at dbPath.
func New(dbPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		indent: 1,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.outDir == "" {
		return nil, ErrNoOutputDir
	}
	if e.jobs < 1 {
		e.jobs = runtime.GOMAXPROCS(0)
	}
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("sharon: create output directory: %w", err)
	}
	outDir, err := filepath.Abs(e.outDir)
	if err != nil {
		return nil, fmt.Errorf("sharon: output directory: %w", err)
	}
	e.outDir = outDir

	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("sharon: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("sharon: migrate: %w", err)
	}
	e.store = s
	return e, nil
}

// Close releases the Engine's database resources and keeps the database.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Drop drops the filemap, closes the database and deletes its files.
func (e *Engine) Drop() error {
	return e.store.Drop()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *store.Store {
	return e.store
}

// OutputDir returns the absolute output directory.
func (e *Engine) OutputDir() string {
	return e.outDir
}

// Result describes a completed run.
type Result struct {
	// Files holds the identity of every discovered file in discovery order,
	// including those that failed to convert.
	Files []*FileRecord
	// Failed counts the files that could not be converted.
	Failed int
}

// Run converts every supported source file found under paths. Input and
// store errors abort the run before any file is converted; per-file
// failures are collected into a *RunError returned alongside the Result.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	files, err := e.discover(paths)
	if err != nil {
		return nil, err
	}
	e.logger.Info("run started", zap.Int("files", len(files)), zap.Int("jobs", e.jobs))

	items, err := e.assign(files)
	if err != nil {
		return nil, err
	}
	failures := e.convertAll(ctx, items)
	if err := e.refreshPackages(items); err != nil {
		return nil, err
	}

	res := &Result{Files: make([]*FileRecord, len(items)), Failed: len(failures)}
	for i, it := range items {
		res.Files[i] = it.rec
	}
	e.metrics.RunDone(time.Since(start))
	e.logger.Info("run finished",
		zap.Int("files", len(items)),
		zap.Int("failed", len(failures)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if len(failures) > 0 {
		return res, &RunError{Files: failures}
	}
	return res, nil
}

// assign resolves the identity of every file. It runs on one goroutine so
// that collision retries against the store never race.
func (e *Engine) assign(files []discovered) ([]workItem, error) {
	a := identity.NewAssigner(e.store, e.outDir)
	items := make([]workItem, 0, len(files))
	for _, f := range files {
		rec, err := a.Resolve(f.path)
		if err != nil {
			return nil, fmt.Errorf("sharon: assign identity: %w", err)
		}
		items = append(items, workItem{path: f.path, dialect: f.dialect, rec: rec})
	}
	e.metrics.IdentityRetries(a.Retries())
	return items, nil
}

// refreshPackages copies the packages recorded during conversion into the
// items' records.
func (e *Engine) refreshPackages(items []workItem) error {
	all, err := e.store.All()
	if err != nil {
		return fmt.Errorf("sharon: read filemap: %w", err)
	}
	byID := make(map[string]*FileRecord, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}
	for _, it := range items {
		if r, ok := byID[it.rec.ID]; ok {
			it.rec.Package = r.Package
		}
	}
	return nil
}

// discovered is a source file accepted by discovery.
type discovered struct {
	path    string
	dialect lang.Dialect
}

// skipDirs lists directory names that are never descended into.
var skipDirs = map[string]bool{
	"build":        true,
	"node_modules": true,
	"target":       true,
}

// Discover expands paths into the supported source files they name.
// Directories are walked recursively, skipping hidden and build output
// directories; their files are returned sorted. Explicit files are kept in
// argument order when their extension names an enabled dialect.
func (e *Engine) Discover(paths []string) ([]string, error) {
	found, err := e.discover(paths)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.path
	}
	return out, nil
}

func (e *Engine) discover(paths []string) ([]discovered, error) {
	var out []discovered
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFileOrDir, p)
			}
			return nil, fmt.Errorf("sharon: stat %s: %w", p, err)
		}
		switch {
		case info.Mode().IsRegular():
			if d, ok := e.accept(p); ok {
				out = append(out, discovered{path: p, dialect: d})
			} else {
				e.logger.Debug("skipping unsupported file", zap.String("path", p))
			}
		case info.IsDir():
			found, err := e.walk(p)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotFileOrDir, p)
		}
	}
	return out, nil
}

func (e *Engine) walk(root string) ([]discovered, error) {
	var out []discovered
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if dialect, ok := e.accept(path); ok {
			out = append(out, discovered{path: path, dialect: dialect})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sharon: walk directory: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

func (e *Engine) accept(path string) (lang.Dialect, bool) {
	d, ok := lang.ForFile(path)
	if !ok {
		return "", false
	}
	if e.languages != nil && !e.languages[d] {
		return "", false
	}
	return d, true
}
