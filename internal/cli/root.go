// Package cli implements the mem CLI commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/config"
	"github.com/rcliao/mem/internal/store"
)

var (
	dbPath    string
	useGlobal bool
	jsonOut   bool
	quiet     bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mem",
	Short: "Persistent memory for LLMs",
	Long: `Persistent memory for LLMs. Store and search information across sessions.

QUICK START:
  mem remember "API key is in .env"              Store a memory
  mem remember "JWT auth setup" --auto-tag       Auto-detect tags
  mem recall "API"                               Search memories
  mem update 42 "New content" --tag newtag       Update in-place
  mem list --session work --min-importance 4     Filter by session/importance
  mem dedupe --dry-run                           Find duplicates

OUTPUT FORMATS:
  Default    Human-readable tables
  --json     JSON array for parsing (LLMs should use this)
  --quiet    Just IDs (for scripting)

DATABASE:
  Default location: .mem/memory.db (local) or ~/.mem/memory.db
  Override with: --db PATH or MEM_DB env var`,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $MEM_DB, local .mem/, or ~/.mem/memory.db)")
	RootCmd.PersistentFlags().BoolVarP(&useGlobal, "global", "g", false, "Use global database (~/.mem/) even if local .mem/ exists")
	RootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON array. Use this for programmatic access")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output: just IDs for scripting")
}

func openStore() (*store.SQLiteStore, error) {
	path, err := config.ResolveDBPath(dbPath, useGlobal)
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDBDir(path); err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(path)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// confirmPrompt asks a yes/no question on the terminal. Anything but an
// explicit yes returns the default.
func confirmPrompt(prompt string, def bool) bool {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Printf("%s %s ", prompt, suffix)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return def
}

// readStdin returns piped stdin content, or "" when stdin is a terminal.
func readStdin() string {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return ""
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
