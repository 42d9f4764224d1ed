package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forget [id]",
		Short: "Delete memories",
		Long: `Delete memories by ID or bulk delete by tag.

EXAMPLES:
  mem forget 42                              Delete memory #42
  mem forget --tag temporary --confirm       Delete all with 'temporary' tag
  mem forget --tag draft -y                  Same, -y skips confirmation

SAFETY:
  Single ID deletes immediately.
  Bulk tag deletes require --confirm/-y to prevent accidents.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runForget,
	}

	cmd.Flags().StringP("tag", "t", "", "Delete ALL memories with this tag (requires --confirm)")
	cmd.Flags().BoolP("confirm", "y", false, "Skip confirmation prompt for bulk delete")

	RootCmd.AddCommand(cmd)
}

func runForget(cmd *cobra.Command, args []string) {
	tag, _ := cmd.Flags().GetString("tag")
	confirm, _ := cmd.Flags().GetBool("confirm")

	if len(args) == 0 && tag == "" {
		fmt.Fprintln(os.Stderr, "error: provide either a memory ID or --tag")
		os.Exit(1)
	}

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			exitErr("invalid id", err)
		}
		if err := st.Delete(cmd.Context(), id); err != nil {
			exitErr("delete memory", err)
		}
		if !quiet {
			fmt.Printf("Deleted memory %d\n", id)
		}
		return
	}

	memories, err := st.All(cmd.Context())
	if err != nil {
		exitErr("load memories", err)
	}

	var toDelete []int64
	for _, m := range memories {
		if m.HasTag(tag) {
			toDelete = append(toDelete, m.ID)
		}
	}

	if len(toDelete) == 0 {
		fmt.Printf("No memories found with tag '%s'\n", tag)
		return
	}

	if !confirm {
		if !confirmPrompt(fmt.Sprintf("Delete %d memories with tag '%s'?", len(toDelete), tag), false) {
			fmt.Println("Aborted.")
			os.Exit(1)
		}
	}

	for _, id := range toDelete {
		if err := st.Delete(cmd.Context(), id); err != nil {
			exitErr("delete memory", err)
		}
	}

	if !quiet {
		fmt.Printf("Deleted %d memories\n", len(toDelete))
	}
}
