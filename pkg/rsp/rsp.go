// Package rsp handles compiler response files: recovering the source file name
// a response file was generated for, reading its argument tokens and turning
// them back into a command line.
package rsp

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Manu343726/rspcompdb/pkg/utils"
	"github.com/spf13/afero"
)

// Extension is the file extension response files are enumerated by
const Extension = ".rsp"

// Number of trailing dot-separated segments a response file name carries on top
// of the source file name, e.g. "Foo.cpp.o.rsp" -> "Foo.cpp"
const trailingSegments = 2

var (
	ErrMalformedName = errors.New("malformed response file name")
	ErrUnreadable    = errors.New("unreadable response file")
)

// DeriveSourceName strips the last two dot-separated segments of a response
// file base name. Names with fewer than three segments have nothing left after
// stripping and are rejected with ErrMalformedName and an empty result.
func DeriveSourceName(base string) (string, error) {
	segments := strings.Split(filepath.Base(base), ".")

	if len(segments) <= trailingSegments {
		return "", utils.MakeError(ErrMalformedName, "'%s' needs at least %d dot-separated segments", base, trailingSegments+1)
	}

	name := strings.Join(segments[:len(segments)-trailingSegments], ".")
	if name == "" {
		return "", utils.MakeError(ErrMalformedName, "'%s' has an empty source name", base)
	}

	return name, nil
}

// SourceCandidates returns the source file names a response file may belong
// to, most specific first: the derived name, then the name with only the
// response extension removed ("Foo.cpp.rsp" -> "Foo", "Foo.cpp").
func SourceCandidates(base string) ([]string, error) {
	derived, err := DeriveSourceName(base)
	if err != nil {
		return nil, err
	}

	base = filepath.Base(base)
	candidates := []string{derived}

	if stripped := strings.TrimSuffix(base, filepath.Ext(base)); stripped != "" {
		candidates = append(candidates, stripped)
	}

	return utils.Unique(candidates), nil
}

// ReadArgs reads the argument tokens of a response file, one per line. Lines
// of any length are accepted and empty lines are kept as empty tokens.
func ReadArgs(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, utils.MakeError(ErrUnreadable, "%s: %v", path, err)
	}

	return SplitLines(string(data)), nil
}

// SplitLines splits text at line boundaries: "\n", "\r\n", a bare "\r" and the
// other Unicode line separators. A final line break does not produce an extra
// empty line.
func SplitLines(text string) []string {
	lines := make([]string, 0, 64)
	start := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		if !isLineBreak(r) {
			continue
		}

		lines = append(lines, text[start:i-size])

		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

// QuoteArg wraps an argument containing a space in double quotes. Embedded
// quotes are not escaped.
func QuoteArg(arg string) string {
	if strings.Contains(arg, " ") {
		return `"` + arg + `"`
	}

	return arg
}

// JoinCommand builds the command line for a compiler invocation with the given
// response file arguments
func JoinCommand(compiler string, args []string) string {
	return compiler + " " + strings.Join(utils.Map(args, QuoteArg), " ")
}
