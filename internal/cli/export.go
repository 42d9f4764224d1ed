package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all memories to JSON",
		Long: `Export all memories to a JSON file for backup or transfer.

EXAMPLE:
  mem export backup.json
  mem export ~/memories-backup.json --db ./project/.mem/memory.db

The exported format can be imported with 'mem import'.`,
		Args: cobra.ExactArgs(1),
		Run:  runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	records, err := st.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		exitErr("encode export", err)
	}
	if err := os.WriteFile(args[0], b, 0o644); err != nil {
		exitErr("write export", err)
	}

	fmt.Printf("Exported %d memories to %s\n", len(records), args[0])
}
