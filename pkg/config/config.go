// Package config holds the settings of a compilation database generation run
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/rspcompdb/pkg/compdb"
	"github.com/Manu343726/rspcompdb/pkg/utils"
	"github.com/spf13/viper"
)

// Configuration keys, shared by config files, environment variables and flags
const (
	KeyProjectRoot = "project_root"
	KeyProjectName = "project_name"
	KeyResponseDir = "response_dir"
	KeyOutput      = "output"
	KeyCompiler    = "compiler"
	KeySearchRoots = "search_roots"
	KeyPlaceholder = "placeholder"
	KeyCacheMisses = "cache_misses"
	KeyLogLevel    = "log_level"
	KeyLogFile     = "log_file"
)

// EnvPrefix prefixes the environment variables read by the tool, e.g. RSPCOMPDB_OUTPUT
const EnvPrefix = "RSPCOMPDB"

// DefaultCompiler is the clang++ shipped with the Unreal Engine Linux toolchain
const DefaultCompiler = "/opt/unreal-engine/Engine/Extras/ThirdPartyNotUE/SDKs/HostLinux/Linux_x64/v25_clang-18.1.0-rockylinux8/x86_64-unknown-linux-gnu/bin/clang++"

// DefaultSearchRoots are the project directories searched for source files, in priority order
var DefaultSearchRoots = []string{"Source", "Intermediate"}

// Config holds the settings of a run. Paths may be relative to ProjectRoot
// until Resolve() is called.
type Config struct {
	// ProjectRoot is the project directory, also used as the working directory of every record
	ProjectRoot string `mapstructure:"project_root" yaml:"project_root"`

	// ProjectName names the project; defaults to the base name of ProjectRoot
	ProjectName string `mapstructure:"project_name" yaml:"project_name"`

	// ResponseDir contains the *.rsp files. Defaults to .vscode/compileCommands_<ProjectName>
	ResponseDir string `mapstructure:"response_dir" yaml:"response_dir"`

	// Output is the compilation database written by the run
	Output string `mapstructure:"output" yaml:"output"`

	// Compiler is the executable every command starts with
	Compiler string `mapstructure:"compiler" yaml:"compiler"`

	// SearchRoots are searched recursively, in order, for source files
	SearchRoots []string `mapstructure:"search_roots" yaml:"search_roots"`

	// Placeholder is the file of records whose source file could not be found.
	// Defaults to <ProjectName>.uproject
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`

	// CacheMisses makes source lookups remember names that were not found
	CacheMisses bool `mapstructure:"cache_misses" yaml:"cache_misses"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
}

// SetDefaults registers the default value of every key in v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjectRoot, "")
	v.SetDefault(KeyProjectName, "")
	v.SetDefault(KeyResponseDir, "")
	v.SetDefault(KeyOutput, compdb.DefaultFileName)
	v.SetDefault(KeyCompiler, DefaultCompiler)
	v.SetDefault(KeySearchRoots, DefaultSearchRoots)
	v.SetDefault(KeyPlaceholder, "")
	v.SetDefault(KeyCacheMisses, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// Load decodes the configuration held by v and resolves it
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := config.Resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the resolved default configuration for the given project root
func Default(projectRoot string) (*Config, error) {
	config := &Config{
		ProjectRoot: projectRoot,
		Output:      compdb.DefaultFileName,
		Compiler:    DefaultCompiler,
		SearchRoots: append([]string{}, DefaultSearchRoots...),
		LogLevel:    "info",
	}

	if err := config.Resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// Resolve fills derived defaults and makes every path absolute. Relative paths
// are interpreted relative to the project root.
func (c *Config) Resolve() error {
	if c.ProjectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determining project root: %w", err)
		}
		c.ProjectRoot = cwd
	}

	root, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root %s: %w", c.ProjectRoot, err)
	}
	c.ProjectRoot = root

	if c.ProjectName == "" {
		c.ProjectName = filepath.Base(root)
	}

	if c.ResponseDir == "" {
		c.ResponseDir = filepath.Join(".vscode", "compileCommands_"+c.ProjectName)
	}

	if c.Placeholder == "" {
		c.Placeholder = c.ProjectName + ".uproject"
	}

	if c.Output == "" {
		c.Output = compdb.DefaultFileName
	}

	if len(c.SearchRoots) == 0 {
		c.SearchRoots = append([]string{}, DefaultSearchRoots...)
	}

	if strings.TrimSpace(c.Compiler) == "" {
		c.Compiler = DefaultCompiler
	}

	c.ResponseDir = c.abs(c.ResponseDir)
	c.Output = c.abs(c.Output)
	c.Placeholder = c.abs(c.Placeholder)
	c.SearchRoots = utils.Unique(utils.Map(c.SearchRoots, c.abs))

	if c.LogFile != "" {
		c.LogFile = c.abs(c.LogFile)
	}

	return nil
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(c.ProjectRoot, path)
}
