package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/config"
	"github.com/rcliao/mem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a memory database",
		Long: `Initialize a memory database.

By default, creates a LOCAL database in the current directory (.mem/).
Use --global to initialize the global database (~/.mem/).

EXAMPLES:
  mem init                 Create local .mem/ in current directory
  mem init --global        Initialize global ~/.mem/
  mem init --db /custom    Initialize at custom path

BEHAVIOR:
  - Local DB is used when .mem/ exists in current directory
  - Global DB (~/.mem/) is the fallback when no local exists
  - Use --global flag on any command to force global DB`,
		Run: runInit,
	}

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	var path string
	var label string
	var err error

	switch {
	case dbPath != "":
		path, err = config.ResolveDBPath(dbPath, false)
		label = "Database"
	case useGlobal:
		path, err = config.GlobalDBPath()
		label = "Global database"
	default:
		path, err = config.LocalDBPath()
		label = "Local database"
	}
	if err != nil {
		exitErr("resolve path", err)
	}

	if err := config.EnsureDBDir(path); err != nil {
		exitErr("create db dir", err)
	}

	st, err := store.NewSQLiteStore(path)
	if err != nil {
		exitErr("initialize db", err)
	}
	st.Close()

	fmt.Printf("%s initialized at: %s\n", label, path)
}
