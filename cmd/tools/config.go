package tools

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a run would use, after applying defaults, the config
file, RSPCOMPDB_* environment variables and flags. The output is valid YAML and
can be saved as .rspcompdb.yaml.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		defer logger.Close()

		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		defer encoder.Close()

		if err := encoder.Encode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding configuration: %v\n", err)
			logger.Close()
			os.Exit(1)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(configCmd)
}
