package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update [id] [content]",
		Short: "Modify a memory in-place",
		Long: `Update an existing memory in-place without losing ID/timestamps.

EXAMPLES:
  mem update 42 "New content"             Replace content
  mem update 42 --tag newtag              Add a tag
  mem update 42 --context "New context"   Update context
  mem update 42 --clear-tags              Remove all tags
  mem update 42 --see-also 15 --see-also 23  Add related memories
  mem update 42 --importance 5            Mark as critical

Multiple flags can be combined in one command.`,
		Args: cobra.RangeArgs(1, 2),
		Run:  runUpdate,
	}

	cmd.Flags().StringArrayP("tag", "t", nil, "Add tag(s) to the memory. Repeatable")
	cmd.Flags().StringP("context", "c", "", "Update the context field")
	cmd.Flags().Bool("clear-tags", false, "Remove all tags from the memory")
	cmd.Flags().String("session", "", "Set/change the session ID")
	cmd.Flags().Int64("supersedes", 0, "Set the ID of memory this replaces")
	cmd.Flags().Int64Slice("see-also", nil, "Add related memory IDs. Repeatable")
	cmd.Flags().String("source-url", "", "Set/update the source URL")
	cmd.Flags().String("source-file", "", "Set/update the source file path")
	cmd.Flags().IntP("importance", "i", 0, "Set importance level 1-5")

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("invalid id", err)
	}

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memory, err := st.Get(cmd.Context(), id)
	if err != nil {
		exitErr("get memory", err)
	}

	changed := false

	if len(args) > 1 {
		memory.Content = args[1]
		changed = true
	}

	if clearTags, _ := cmd.Flags().GetBool("clear-tags"); clearTags {
		memory.Tags = nil
		changed = true
	} else if tags, _ := cmd.Flags().GetStringArray("tag"); len(tags) > 0 {
		for _, t := range tags {
			if !memory.HasTag(t) {
				memory.Tags = append(memory.Tags, t)
				changed = true
			}
		}
	}

	if cmd.Flags().Changed("context") {
		memory.Context, _ = cmd.Flags().GetString("context")
		changed = true
	}
	if cmd.Flags().Changed("session") {
		memory.SessionID, _ = cmd.Flags().GetString("session")
		changed = true
	}
	if cmd.Flags().Changed("supersedes") {
		v, _ := cmd.Flags().GetInt64("supersedes")
		memory.Supersedes = &v
		changed = true
	}
	if seeAlso, _ := cmd.Flags().GetInt64Slice("see-also"); len(seeAlso) > 0 {
		existing := make(map[int64]bool, len(memory.SeeAlso))
		for _, sid := range memory.SeeAlso {
			existing[sid] = true
		}
		for _, sid := range seeAlso {
			if !existing[sid] {
				memory.SeeAlso = append(memory.SeeAlso, sid)
				changed = true
			}
		}
	}
	if cmd.Flags().Changed("source-url") {
		memory.SourceURL, _ = cmd.Flags().GetString("source-url")
		changed = true
	}
	if cmd.Flags().Changed("source-file") {
		memory.SourceFile, _ = cmd.Flags().GetString("source-file")
		changed = true
	}
	if cmd.Flags().Changed("importance") {
		importance, _ := cmd.Flags().GetInt("importance")
		if importance < 1 || importance > 5 {
			exitErr("invalid flag", fmt.Errorf("importance must be 1-5, got %d", importance))
		}
		memory.Importance = importance
		changed = true
	}

	if !changed {
		if !quiet {
			fmt.Printf("No changes made to memory %d\n", id)
		}
		return
	}

	if err := st.Save(cmd.Context(), memory); err != nil {
		exitErr("save memory", err)
	}

	switch {
	case quiet:
		fmt.Println(memory.ID)
	case jsonOut:
		printJSON(map[string]interface{}{
			"id":      memory.ID,
			"content": memory.Content,
			"tags":    memory.Tags,
			"updated": true,
		})
	default:
		fmt.Printf("Updated memory %d\n", id)
	}
}
