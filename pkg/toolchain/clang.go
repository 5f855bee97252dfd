package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var ErrCompilerNotFound = errors.New("compiler not found")

// AutoCompiler selects clang++ from the system PATH instead of an explicit path
const AutoCompiler = "auto"

// Compiler is the C/C++ compiler written at the start of every compile command
type Compiler struct {
	path     string
	exists   bool
	isSystem bool // true if found in PATH rather than configured explicitly
}

// Path returns the path of the compiler executable
func (c *Compiler) Path() string {
	return c.path
}

// Exists returns true if the compiler executable is present on this machine
func (c *Compiler) Exists() bool {
	return c.exists
}

// IsSystemCompiler returns true if the compiler was found in the system PATH
func (c *Compiler) IsSystemCompiler() bool {
	return c.isSystem
}

// Discover selects the compiler to write into compile commands.
// Search order:
// 1. Explicit path
// 2. clang++ in the system PATH
//
// An explicit path is always honored, even if it does not exist on this
// machine, since the database may be consumed elsewhere. In that case the
// compiler is returned together with ErrCompilerNotFound.
func Discover(path string) (*Compiler, error) {
	if path != "" {
		compiler := &Compiler{path: path}

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			compiler.exists = true
			return compiler, nil
		}

		return compiler, fmt.Errorf("%w: %s", ErrCompilerNotFound, path)
	}

	if systemCompiler := findSystemCompiler(); systemCompiler != "" {
		return &Compiler{path: systemCompiler, exists: true, isSystem: true}, nil
	}

	return nil, fmt.Errorf("%w: no clang++ in PATH", ErrCompilerNotFound)
}

// Select resolves a configured compiler: AutoCompiler searches the system PATH,
// anything else is an explicit path handled as Discover does
func Select(configured string) (*Compiler, error) {
	if configured == AutoCompiler {
		return Discover("")
	}

	return Discover(configured)
}

// findSystemCompiler looks for clang++ in the system PATH
func findSystemCompiler() string {
	for _, name := range []string{"clang++", "clang"} {
		if runtime.GOOS == "windows" {
			name += ".exe"
		}

		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// Version returns the first line of the compiler's --version output
func (c *Compiler) Version() (string, error) {
	if !c.exists {
		return "", fmt.Errorf("%w: %s", ErrCompilerNotFound, c.path)
	}

	cmd := exec.Command(c.path, "--version")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", c.path, err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0]), nil
	}
	return "", nil
}

// IsSourceFile returns true if the file extension indicates a C/C++ source or header file
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".c", ".cc", ".cpp", ".cxx", ".c++", ".m", ".mm", ".h", ".hh", ".hpp", ".hxx", ".inl":
		return true
	default:
		return false
	}
}
