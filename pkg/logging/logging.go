// Package logging builds the slog loggers used by the tool: a human readable
// console handler on stderr, optionally fanned out to a JSON log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/rspcompdb/pkg/utils"
	"github.com/charmbracelet/log"
	slogmulti "github.com/samber/slog-multi"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LevelNames returns the accepted level names, sorted
func LevelNames() []string {
	return utils.SortedKeys(levels)
}

// ParseLevel converts a level name (case-insensitive) to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log level '%s', expected one of %s", name, strings.Join(LevelNames(), ", "))
	}

	return level, nil
}

// Options configures New
type Options struct {
	// Console receives human readable output, usually os.Stderr
	Console io.Writer
	Level   slog.Level
	// File, if not empty, also receives every record as JSON
	File string
}

// Logger wraps a slog.Logger together with the resources it owns
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// New creates a logger writing to the console and, optionally, to a file
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleHandler := log.NewWithOptions(console, log.Options{
		Level:           log.Level(opts.Level),
		ReportTimestamp: false,
	})

	if opts.File == "" {
		return &Logger{Logger: slog.New(consoleHandler)}, nil
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", opts.File, err)
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &Logger{
		Logger:  slog.New(slogmulti.Fanout(consoleHandler, fileHandler)),
		closers: []io.Closer{file},
	}, nil
}

// Discard returns a logger that drops every record
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// Close releases the files opened by the logger
func (l *Logger) Close() error {
	var firstErr error

	for _, closer := range l.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	l.closers = nil
	return firstErr
}

// NewConsole creates a logger on stderr from a level name and an optional log file
func NewConsole(levelName, file string) (*Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	return New(Options{Console: os.Stderr, Level: level, File: file})
}
