// Package generator regenerates a compilation database from a directory of
// compiler response files.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/rspcompdb/pkg/builder"
	"github.com/Manu343726/rspcompdb/pkg/compdb"
	"github.com/Manu343726/rspcompdb/pkg/config"
	"github.com/Manu343726/rspcompdb/pkg/locator"
	"github.com/Manu343726/rspcompdb/pkg/rsp"
	"github.com/Manu343726/rspcompdb/pkg/utils"
	"github.com/spf13/afero"
)

var ErrMissingResponseDir = errors.New("response file directory not found")

// Skipped describes a response file that contributed no record
type Skipped struct {
	Path string
	// Reason is rsp.ErrMalformedName or rsp.ErrUnreadable
	Reason error
	Err    error
}

// Result summarizes a run
type Result struct {
	// Output is the path the database was written to
	Output string
	// ResponseFiles lists the response files found, in processing order
	ResponseFiles []string
	Database      *compdb.Database
	Skipped       []Skipped
	Lookups       locator.Stats
}

// Generator runs the response file to compilation database pipeline
type Generator struct {
	fs     afero.Fs
	config *config.Config
	logger *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithFs replaces the OS filesystem, mostly for tests
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithLogger sets the logger receiving warnings and progress
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a generator for a resolved configuration
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		fs:     afero.NewOsFs(),
		config: cfg,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ResponseFiles returns the *.rsp files of the response directory, sorted by
// name. Subdirectories are not searched.
func (g *Generator) ResponseFiles() ([]string, error) {
	dir := g.config.ResponseDir

	exists, err := afero.DirExists(g.fs, dir)
	if err != nil {
		return nil, utils.MakeError(ErrMissingResponseDir, "%s: %v", dir, err)
	}
	if !exists {
		return nil, utils.MakeError(ErrMissingResponseDir, "%s", dir)
	}

	files, err := afero.Glob(g.fs, filepath.Join(dir, "*"+rsp.Extension))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	return files, nil
}

// Run builds one record per readable response file and writes the database,
// overwriting the output file. Unreadable or malformed response files are
// logged, reported in Result.Skipped and otherwise ignored. Nothing is written
// if the response directory does not exist.
func (g *Generator) Run() (*Result, error) {
	files, err := g.ResponseFiles()
	if err != nil {
		return nil, err
	}

	g.logger.Info("processing response files", "count", len(files), "dir", g.config.ResponseDir)

	var locatorOpts []locator.Option
	locatorOpts = append(locatorOpts, locator.WithLogger(g.logger))
	if g.config.CacheMisses {
		locatorOpts = append(locatorOpts, locator.WithNegativeCache())
	}

	sources := locator.New(g.fs, g.config.SearchRoots, locatorOpts...)
	records := builder.New(g.fs, sources, builder.Settings{
		Directory:   g.config.ProjectRoot,
		Compiler:    g.config.Compiler,
		Placeholder: g.config.Placeholder,
	}, g.logger)

	result := &Result{
		Output:        g.config.Output,
		ResponseFiles: files,
		Database:      compdb.New(),
	}

	for _, file := range files {
		record, err := records.Build(file)
		if err != nil {
			g.logger.Warn("skipping response file", "path", file, "error", err)
			result.Skipped = append(result.Skipped, Skipped{
				Path:   file,
				Reason: utils.FirstMatching(err, rsp.ErrMalformedName, rsp.ErrUnreadable),
				Err:    err,
			})
			continue
		}

		result.Database.Append(record)
	}

	result.Lookups = sources.Stats()

	if err := result.Database.Save(g.fs, g.config.Output); err != nil {
		return nil, err
	}

	g.logger.Info("wrote compilation database", "path", g.config.Output, "records", result.Database.Len(), "skipped", len(result.Skipped))
	return result, nil
}
