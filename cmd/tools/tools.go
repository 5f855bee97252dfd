package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/rspcompdb/pkg/config"
	"github.com/Manu343726/rspcompdb/pkg/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	colorName    = color.New(color.FgCyan)
	colorPath    = color.New(color.FgGreen)
	colorMissing = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
)

// ToolsCmd represents the tools command
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspection and troubleshooting tools",
}

// loadConfig loads the effective configuration and a console logger, exiting on failure
func loadConfig() (*config.Config, *logging.Logger) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewConsole(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg, logger
}
