package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/rspcompdb/cmd/tools"
	"github.com/Manu343726/rspcompdb/pkg/config"
	"github.com/Manu343726/rspcompdb/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rspcompdb",
	Short: "Regenerate compile_commands.json from compiler response files",
	Long: `rspcompdb rebuilds the clang compilation database (compile_commands.json) of an
Unreal Engine project from the compiler response files (*.rsp) the engine writes for
Visual Studio Code.

Each response file becomes one record whose command is the configured compiler followed
by the response file arguments, and whose file is the matching source file found under
the project search roots. When no source file matches, the record points to the project
descriptor instead.

Running rspcompdb without a subcommand is the same as running "rspcompdb generate".`,
	Run: runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, generateCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is .rspcompdb.yaml in the project root or $HOME)")
	flags.StringP("project-root", "C", "", "Project root directory (default is the current directory)")
	flags.String("project-name", "", "Project name (default is the project root directory name)")
	flags.StringP("response-dir", "r", "", "Directory containing the *.rsp files (default is .vscode/compileCommands_<project name>)")
	flags.StringP("output", "o", "", "Compilation database to write (default is compile_commands.json)")
	flags.String("compiler", "", "Compiler executable written at the start of every command, or \"auto\" to use clang++ from PATH")
	flags.StringSlice("search-root", nil, "Directory searched for source files, in priority order (repeatable, default is Source,Intermediate)")
	flags.String("placeholder", "", "File used by records whose source file is not found (default is <project name>.uproject)")
	flags.Bool("cache-misses", false, "Remember source file names that could not be found instead of searching again")
	flags.String("log-level", "", "Log level: "+strings.Join(logging.LevelNames(), ", "))
	flags.String("log-file", "", "Also write logs as JSON to this file")

	bindings := map[string]string{
		config.KeyProjectRoot: "project-root",
		config.KeyProjectName: "project-name",
		config.KeyResponseDir: "response-dir",
		config.KeyOutput:      "output",
		config.KeyCompiler:    "compiler",
		config.KeySearchRoots: "search-root",
		config.KeyPlaceholder: "placeholder",
		config.KeyCacheMisses: "cache-misses",
		config.KeyLogLevel:    "log-level",
		config.KeyLogFile:     "log-file",
	}

	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in the project root first, then in the home directory,
		// with name ".rspcompdb" (without extension).
		if root := viper.GetString(config.KeyProjectRoot); root != "" {
			viper.AddConfigPath(root)
		} else {
			viper.AddConfigPath(".")
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rspcompdb")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}
