package rsp

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSourceName(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		expected string
		wantErr  bool
	}{
		{"three segments", "X.a.b", "X", false},
		{"unreal object response", "Foo.cpp.o.rsp", "Foo.cpp", false},
		{"source extension response", "Foo.cpp.rsp", "Foo", false},
		{"embedded dots keep everything but the last two", "Module.Foo.gen.cpp.o.rsp", "Module.Foo.gen.cpp", false},
		{"directory is ignored", "/project/.vscode/Foo.cpp.o.rsp", "Foo.cpp", false},
		{"two segments", "Foo.rsp", "", true},
		{"one segment", "Foo", "", true},
		{"empty", "", "", true},
		{"empty source name", ".cpp.rsp", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := DeriveSourceName(tt.base)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedName)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestSourceCandidates(t *testing.T) {
	t.Run("derived name first", func(t *testing.T) {
		candidates, err := SourceCandidates("Foo.cpp.rsp")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foo", "Foo.cpp"}, candidates)
	})

	t.Run("object response", func(t *testing.T) {
		candidates, err := SourceCandidates("Foo.cpp.o.rsp")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foo.cpp", "Foo.cpp.o"}, candidates)
	})

	t.Run("malformed", func(t *testing.T) {
		candidates, err := SourceCandidates("Foo.rsp")
		assert.ErrorIs(t, err, ErrMalformedName)
		assert.Nil(t, candidates)
	})
}

func TestReadArgs(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("one token per line", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/rsp/Foo.cpp.rsp", []byte("-I/usr/include\n-DFOO=1\n"), 0o644))

		args, err := ReadArgs(fs, "/rsp/Foo.cpp.rsp")
		require.NoError(t, err)
		assert.Equal(t, []string{"-I/usr/include", "-DFOO=1"}, args)
	})

	t.Run("crlf and missing final newline", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/rsp/Bar.cpp.rsp", []byte("-c\r\n-I\"/path with space\"\r\n-o out.o"), 0o644))

		args, err := ReadArgs(fs, "/rsp/Bar.cpp.rsp")
		require.NoError(t, err)
		assert.Equal(t, []string{"-c", `-I"/path with space"`, "-o out.o"}, args)
	})

	t.Run("empty file", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/rsp/Empty.cpp.rsp", nil, 0o644))

		args, err := ReadArgs(fs, "/rsp/Empty.cpp.rsp")
		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("long lines", func(t *testing.T) {
		long := "-DX=" + strings.Repeat("a", 2<<20)
		require.NoError(t, afero.WriteFile(fs, "/rsp/Long.cpp.rsp", []byte("-c\n"+long+"\n-DY\n"), 0o644))

		args, err := ReadArgs(fs, "/rsp/Long.cpp.rsp")
		require.NoError(t, err)
		require.Len(t, args, 3)
		assert.Equal(t, long, args[1])
		assert.Equal(t, "-DY", args[2])
	})

	t.Run("bare carriage return ends a line", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/rsp/Mac.cpp.rsp", []byte("-c\r-DFOO\r"), 0o644))

		args, err := ReadArgs(fs, "/rsp/Mac.cpp.rsp")
		require.NoError(t, err)
		assert.Equal(t, []string{"-c", "-DFOO"}, args)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadArgs(afero.NewOsFs(), t.TempDir())
		assert.ErrorIs(t, err, ErrUnreadable)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadArgs(fs, "/rsp/Missing.cpp.rsp")
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.Contains(t, err.Error(), "Missing.cpp.rsp")
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", []string{}},
		{"no final newline", "a\nb", []string{"a", "b"}},
		{"final newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"cr cr lf", "a\r\r\nb", []string{"a", "", "b"}},
		{"empty lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"form feed and vertical tab", "a\fb\vc", []string{"a", "b", "c"}},
		{"unicode separators", "a\u2028b\u0085c", []string{"a", "b", "c"}},
		{"tabs are not breaks", "a\tb", []string{"a\tb"}},
		{"only a newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.text))
		})
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		arg      string
		expected string
	}{
		{"-DFOO=1", "-DFOO=1"},
		{"-I/path with space", `"-I/path with space"`},
		{"", ""},
		{"tab\tseparated", "tab\tseparated"},
		{`-DMSG="a b"`, `"-DMSG="a b""`},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteArg(tt.arg))
		})
	}
}

func TestJoinCommand(t *testing.T) {
	t.Run("quotes only tokens with spaces", func(t *testing.T) {
		command := JoinCommand("/usr/bin/clang++", []string{"-c", "-I/a b/include", "-DFOO=1"})
		assert.Equal(t, `/usr/bin/clang++ -c "-I/a b/include" -DFOO=1`, command)
	})

	t.Run("no arguments", func(t *testing.T) {
		assert.Equal(t, "/usr/bin/clang++ ", JoinCommand("/usr/bin/clang++", nil))
	})
}
