package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/rspcompdb/pkg/toolchain"
	"github.com/spf13/cobra"
)

var compilerCmd = &cobra.Command{
	Use:   "compiler",
	Short: "Output the compiler written into compile commands and its version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		defer logger.Close()

		compiler, err := toolchain.Select(cfg.Compiler)
		if err != nil {
			fmt.Println(colorPath.Sprint(cfg.Compiler))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			logger.Close()
			os.Exit(1)
		}

		fmt.Println(colorPath.Sprint(compiler.Path()))

		version, err := compiler.Version()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting compiler version: %v\n", err)
			logger.Close()
			os.Exit(2)
		}

		fmt.Println(version)
	},
}

func init() {
	ToolsCmd.AddCommand(compilerCmd)
}
