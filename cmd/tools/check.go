package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/rspcompdb/pkg/compdb"
	"github.com/Manu343726/rspcompdb/pkg/toolchain"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report records of the compilation database without a real source file",
	Long: `Loads the configured output file and lists the records that point to the
placeholder file, or to a file that is not a C/C++ source or header.

Exits with status 2 if any such record exists.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		defer logger.Close()

		db, err := compdb.Load(afero.NewOsFs(), cfg.Output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading compilation database: %v\n", err)
			logger.Close()
			os.Exit(1)
		}

		placeholders := db.Placeholders(cfg.Placeholder)
		for _, record := range placeholders {
			fmt.Printf("%s %s\n", colorWarning.Sprint("placeholder:"), record.Command)
		}

		unknown := 0
		for _, record := range db.Records() {
			if record.File != cfg.Placeholder && !toolchain.IsSourceFile(record.File) {
				fmt.Printf("%s %s\n", colorWarning.Sprint("not a source file:"), colorPath.Sprint(record.File))
				unknown++
			}
		}

		fmt.Printf("%d records, %d placeholders, %d non-source files\n", db.Len(), len(placeholders), unknown)

		if len(placeholders) > 0 || unknown > 0 {
			logger.Close()
			os.Exit(2)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(checkCmd)
}
