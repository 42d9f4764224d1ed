package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rebuild-index",
		Short: "Rebuild FTS search index",
		Long: `Rebuild the FTS5 search index from all memories.

Use this for maintenance/recovery if search results seem incorrect.

EXAMPLE:
  mem rebuild-index
  mem rebuild-index --db /path/to/custom.db`,
		Run: runRebuildIndex,
	}

	RootCmd.AddCommand(cmd)
}

func runRebuildIndex(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	count, err := st.RebuildIndex(cmd.Context())
	if err != nil {
		exitErr("rebuild index", err)
	}

	fmt.Printf("Rebuilt index with %d memories\n", count)
}
