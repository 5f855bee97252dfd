package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/rspcompdb/pkg/locator"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate name...",
	Short: "Find source files the way compile records do",
	Long: `Searches the configured search roots for each given file name and prints the
path a compile record would use. Names may contain shell-style wildcards.

Exits with status 2 if any name could not be found.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		defer logger.Close()

		var opts []locator.Option
		opts = append(opts, locator.WithLogger(logger.Logger))
		if cfg.CacheMisses {
			opts = append(opts, locator.WithNegativeCache())
		}

		sources := locator.New(afero.NewOsFs(), cfg.SearchRoots, opts...)
		missing := 0

		for _, name := range args {
			path, ok := sources.Resolve(name)
			if ok {
				fmt.Printf("%s: %s\n", colorName.Sprint(name), colorPath.Sprint(path))
			} else {
				fmt.Printf("%s: %s\n", colorName.Sprint(name), colorMissing.Sprint("not found"))
				missing++
			}
		}

		if missing > 0 {
			logger.Close()
			os.Exit(2)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(locateCmd)
}
