package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/memerr"
	"github.com/rcliao/mem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import memories from JSON",
		Long: `Import memories from a JSON file.

EXAMPLE:
  mem import backup.json
  mem import memories.json --db ./new-project/.mem/memory.db

Expected format: JSON array of objects with 'content' field (required),
plus optional 'tags', 'context', 'source' fields.`,
		Args: cobra.ExactArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	b, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read file", err)
	}

	var records []store.ExportRecord
	if err := json.Unmarshal(b, &records); err != nil {
		exitErr("parse file", memerr.Wrapf(err, memerr.CodeImportInvalid, "%s", args[0]))
	}

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	count, err := st.Import(cmd.Context(), records)
	if err != nil {
		exitErr("import", err)
	}

	if !quiet {
		fmt.Printf("Imported %d memories from %s\n", count, args[0])
	}
}
