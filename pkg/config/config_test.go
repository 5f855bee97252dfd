package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper()
	v.Set(KeyProjectRoot, "/home/me/ChaosRifts")

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/home/me/ChaosRifts", config.ProjectRoot)
	assert.Equal(t, "ChaosRifts", config.ProjectName)
	assert.Equal(t, "/home/me/ChaosRifts/.vscode/compileCommands_ChaosRifts", config.ResponseDir)
	assert.Equal(t, "/home/me/ChaosRifts/compile_commands.json", config.Output)
	assert.Equal(t, "/home/me/ChaosRifts/ChaosRifts.uproject", config.Placeholder)
	assert.Equal(t, DefaultCompiler, config.Compiler)
	assert.Equal(t, []string{"/home/me/ChaosRifts/Source", "/home/me/ChaosRifts/Intermediate"}, config.SearchRoots)
	assert.False(t, config.CacheMisses)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.LogFile)
}

func TestLoad_ProjectName(t *testing.T) {
	v := newViper()
	v.Set(KeyProjectRoot, "/work/checkout")
	v.Set(KeyProjectName, "Game")

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/work/checkout/.vscode/compileCommands_Game", config.ResponseDir)
	assert.Equal(t, "/work/checkout/Game.uproject", config.Placeholder)
}

func TestLoad_Overrides(t *testing.T) {
	v := newViper()
	v.Set(KeyProjectRoot, "/project")
	v.Set(KeyResponseDir, "/tmp/rsp")
	v.Set(KeyOutput, "build/compile_commands.json")
	v.Set(KeySearchRoots, []string{"Plugins", "Source", "Plugins"})
	v.Set(KeyCacheMisses, true)
	v.Set(KeyLogFile, "rspcompdb.log")

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/rsp", config.ResponseDir)
	assert.Equal(t, "/project/build/compile_commands.json", config.Output)
	assert.Equal(t, []string{"/project/Plugins", "/project/Source"}, config.SearchRoots)
	assert.True(t, config.CacheMisses)
	assert.Equal(t, "/project/rspcompdb.log", config.LogFile)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RSPCOMPDB_COMPILER", "/usr/bin/clang++")
	t.Setenv("RSPCOMPDB_PROJECT_ROOT", "/env/project")

	v := newViper()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/clang++", config.Compiler)
	assert.Equal(t, "/env/project", config.ProjectRoot)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".rspcompdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project_root: /from/file
search_roots:
  - Source
  - Plugins
placeholder: Other.uproject
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/from/file", config.ProjectRoot)
	assert.Equal(t, []string{"/from/file/Source", "/from/file/Plugins"}, config.SearchRoots)
	assert.Equal(t, "/from/file/Other.uproject", config.Placeholder)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	original, err := Default("/project")
	require.NoError(t, err)
	original.CacheMisses = true

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	v := newViper()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(data)))

	loaded, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestResolve_WorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	config := &Config{}
	require.NoError(t, config.Resolve())

	assert.Equal(t, cwd, config.ProjectRoot)
	assert.Equal(t, filepath.Base(cwd), config.ProjectName)
}

func TestLoad_AutoCompiler(t *testing.T) {
	v := newViper()
	v.Set(KeyProjectRoot, "/project")
	v.Set(KeyCompiler, "auto")

	config, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "auto", config.Compiler, "compiler names are not resolved against the project root")
}
