package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/rspcompdb/pkg/config"
	"github.com/Manu343726/rspcompdb/pkg/generator"
	"github.com/Manu343726/rspcompdb/pkg/logging"
	"github.com/Manu343726/rspcompdb/pkg/toolchain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	colorHeader  = color.New(color.FgWhite, color.Bold)
	colorSuccess = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed, color.Bold)
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write compile_commands.json from the project response files",
	Long: `Scans the response file directory for *.rsp files and writes one compilation
database record per response file, replacing the output file.

Response files that cannot be read, or whose name does not follow the
<source>.<ext>.<ext> convention, are reported and skipped. The run still succeeds.

Examples:
  # Run from the project root
  rspcompdb generate

  # Explicit project root and compiler
  rspcompdb generate -C ~/Projects/ChaosRifts --compiler /usr/bin/clang++

  # Use the clang++ found in PATH
  rspcompdb generate --compiler auto

  # Search more directories for source files
  rspcompdb generate --search-root Source --search-root Plugins --search-root Intermediate`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) {
	if code := generate(cmd.OutOrStdout(), cmd.ErrOrStderr()); code != 0 {
		os.Exit(code)
	}
}

// generate runs the generator with the effective configuration and returns the
// process exit status: 1 on fatal errors, 0 otherwise, even if some response
// files were skipped.
func generate(stdout, stderr io.Writer) int {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		colorError.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		colorError.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{Console: stderr, Level: level, File: cfg.LogFile})
	if err != nil {
		colorError.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close()

	compiler, err := toolchain.Select(cfg.Compiler)
	switch {
	case compiler != nil && errors.Is(err, toolchain.ErrCompilerNotFound):
		logger.Info("compiler does not exist on this machine, commands will reference it anyway", "compiler", cfg.Compiler)
	case err != nil:
		colorError.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Compiler = compiler.Path()

	colorHeader.Fprintf(stdout, "Generating %s for %s\n", cfg.Output, cfg.ProjectName)

	result, err := generator.New(cfg, generator.WithLogger(logger.Logger)).Run()
	if err != nil {
		colorError.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, generator.ErrMissingResponseDir) {
			fmt.Fprintln(stderr, "Generate the Visual Studio Code project files with UnrealBuildTool first, or use --response-dir")
		}
		return 1
	}

	fmt.Fprintf(stdout, "%d response files found\n", len(result.ResponseFiles))

	if len(result.Skipped) > 0 {
		colorWarning.Fprintf(stdout, "%d response files skipped\n", len(result.Skipped))
	}

	if placeholders := len(result.Database.Placeholders(cfg.Placeholder)); placeholders > 0 {
		colorWarning.Fprintf(stdout, "%d records point to %s because their source file was not found\n", placeholders, cfg.Placeholder)
	}

	colorSuccess.Fprintf(stdout, "Wrote %d records to %s\n", result.Database.Len(), result.Output)
	return 0
}
