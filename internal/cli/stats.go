package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long: `Show database statistics: memory count, tags, size.

EXAMPLES:
  mem stats          Human-readable output
  mem stats --json   {"memory_count": 42, "tag_count": 5, "tags": {...}, ...}`,
		Run: runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	stats, err := st.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	if jsonOut {
		printJSON(stats)
		return
	}

	fmt.Printf("Database: %s\n", stats.DBPath)
	fmt.Printf("Size: %d bytes\n", stats.DBSizeBytes)
	fmt.Printf("Memories: %d\n", stats.MemoryCount)
	fmt.Printf("Unique tags: %d\n", stats.TagCount)
}
