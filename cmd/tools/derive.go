package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/rspcompdb/pkg/rsp"
	"github.com/spf13/cobra"
)

var deriveCmd = &cobra.Command{
	Use:   "derive response-file...",
	Short: "Show the source file names derived from response file names",
	Long: `Prints, for each response file name, the source file names that are searched
for, in order. Names with fewer than three dot-separated segments are rejected.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false

		for _, name := range args {
			candidates, err := rsp.SourceCandidates(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", colorName.Sprint(name), err)
				failed = true
				continue
			}

			fmt.Printf("%s: %s\n", colorName.Sprint(name), strings.Join(candidates, ", "))
		}

		if failed {
			os.Exit(2)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(deriveCmd)
}
