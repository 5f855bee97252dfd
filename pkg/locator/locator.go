// Package locator finds source files by base name under a prioritized list of
// root directories.
package locator

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Stats counts how the lookups of a Locator were served
type Stats struct {
	// Hits is the number of lookups answered from the cache
	Hits int
	// Misses is the number of lookups that found nothing
	Misses int
	// Scans is the number of lookups that walked the filesystem
	Scans int
}

// Locator resolves base file names to the first matching file found under its
// roots and remembers successful resolutions. A Locator belongs to a single run
// and is not safe for concurrent use.
type Locator struct {
	fs            afero.Fs
	roots         []string
	found         map[string]string
	missing       map[string]struct{}
	negativeCache bool
	logger        *slog.Logger
	stats         Stats
}

// Option configures a Locator
type Option func(*Locator)

// WithNegativeCache makes the locator remember names that could not be found,
// so repeated misses do not rescan the roots. Results are the same either way.
func WithNegativeCache() Option {
	return func(l *Locator) {
		l.negativeCache = true
	}
}

// WithLogger sets the logger used to report scans
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// New creates a locator searching the given roots in order
func New(fs afero.Fs, roots []string, opts ...Option) *Locator {
	l := &Locator{
		fs:      fs,
		roots:   append([]string{}, roots...),
		found:   make(map[string]string),
		missing: make(map[string]struct{}),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Roots returns the search roots in priority order
func (l *Locator) Roots() []string {
	return append([]string{}, l.roots...)
}

// Stats returns lookup counters accumulated so far
func (l *Locator) Stats() Stats {
	return l.stats
}

// Resolve returns the path of the first file matching name under the first
// root that has any match. Roots are not merged: a match in a later root is
// only considered when no earlier root has one. The name is used as the cache
// key verbatim.
func (l *Locator) Resolve(name string) (string, bool) {
	if path, ok := l.found[name]; ok {
		l.stats.Hits++
		return path, true
	}

	if _, ok := l.missing[name]; ok {
		l.stats.Hits++
		l.stats.Misses++
		return "", false
	}

	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		l.stats.Misses++
		return "", false
	}

	l.stats.Scans++

	for _, root := range l.roots {
		if path, ok := l.search(root, name); ok {
			l.logger.Debug("resolved source file", "name", name, "path", path)
			l.found[name] = path
			return path, true
		}
	}

	l.logger.Debug("source file not found", "name", name, "roots", l.roots)
	l.stats.Misses++

	if l.negativeCache {
		l.missing[name] = struct{}{}
	}

	return "", false
}

// search walks a root in pre-order. The entries of a directory are matched
// before any of its subdirectories is entered. Hidden directories are skipped,
// and so are hidden files unless the name is a literal or itself starts with a
// dot. Symlinked files match when their target is a regular file; symlinked
// directories are not followed.
func (l *Locator) search(dir, name string) (string, bool) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Debug("cannot read directory", "dir", dir, "error", err)
		}
		return "", false
	}

	skipHidden := hasMeta(name) && !strings.HasPrefix(name, ".")

	for _, entry := range entries {
		if skipHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if !matches(name, entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if l.isFile(path, entry) {
			return path, true
		}
	}

	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if path, ok := l.search(filepath.Join(dir, entry.Name()), name); ok {
				return path, true
			}
		}
	}

	return "", false
}

// isFile reports whether an entry is a regular file or a symlink to one
func (l *Locator) isFile(path string, entry os.FileInfo) bool {
	if entry.Mode().IsRegular() {
		return true
	}

	if entry.Mode()&os.ModeSymlink == 0 {
		return false
	}

	target, err := l.fs.Stat(path)
	if err != nil {
		l.logger.Debug("dangling symlink", "path", path, "error", err)
		return false
	}

	return target.Mode().IsRegular()
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[`)
}

func matches(pattern, name string) bool {
	ok, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}

	return ok
}
