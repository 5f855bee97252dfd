// Package builder turns a compiler response file into a compile record
package builder

import (
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/rspcompdb/pkg/compdb"
	"github.com/Manu343726/rspcompdb/pkg/rsp"
	"github.com/spf13/afero"
)

// Resolver finds the path of a source file given its base name
type Resolver interface {
	Resolve(name string) (string, bool)
}

// Settings are the per-run constants every record is built from
type Settings struct {
	// Directory is the working directory of every record
	Directory string
	// Compiler is the executable every command starts with
	Compiler string
	// Placeholder is the file used when the source file cannot be found
	Placeholder string
}

// Builder builds compile records from response files
type Builder struct {
	fs       afero.Fs
	resolver Resolver
	settings Settings
	logger   *slog.Logger
}

// New creates a builder. A nil logger discards output.
func New(fs afero.Fs, resolver Resolver, settings Settings, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Builder{
		fs:       fs,
		resolver: resolver,
		settings: settings,
		logger:   logger,
	}
}

// Build creates the compile record for the response file at rspPath. Errors
// wrap rsp.ErrMalformedName or rsp.ErrUnreadable; in both cases the response
// file contributes no record.
func (b *Builder) Build(rspPath string) (compdb.CompileRecord, error) {
	candidates, err := rsp.SourceCandidates(filepath.Base(rspPath))
	if err != nil {
		return compdb.CompileRecord{}, err
	}

	file := b.resolve(candidates)

	args, err := rsp.ReadArgs(b.fs, rspPath)
	if err != nil {
		return compdb.CompileRecord{}, err
	}

	return compdb.CompileRecord{
		Directory: b.settings.Directory,
		Command:   rsp.JoinCommand(b.settings.Compiler, args),
		File:      file,
	}, nil
}

// resolve returns the path of the first candidate that can be located, or the
// placeholder
func (b *Builder) resolve(candidates []string) string {
	for _, name := range candidates {
		if path, ok := b.resolver.Resolve(name); ok {
			return path
		}
	}

	b.logger.Debug("using placeholder for unresolved source", "candidates", candidates, "placeholder", b.settings.Placeholder)
	return b.settings.Placeholder
}
