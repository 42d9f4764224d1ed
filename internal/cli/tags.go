package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func init() {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags (list/add/rm)",
		Long: `Manage tags on memories.

COMMANDS:
  mem tags list              Show all tags with counts
  mem tags add ID TAG        Add tag to memory
  mem tags rm ID TAG         Remove tag from memory`,
	}

	tagsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tags with counts",
		Run:   runTagsList,
	})
	tagsCmd.AddCommand(&cobra.Command{
		Use:   "add [id] [tag]",
		Short: "Add a tag to a memory (idempotent)",
		Args:  cobra.ExactArgs(2),
		Run:   runTagsAdd,
	})
	tagsCmd.AddCommand(&cobra.Command{
		Use:   "rm [id] [tag]",
		Short: "Remove a tag from a memory (idempotent)",
		Args:  cobra.ExactArgs(2),
		Run:   runTagsRemove,
	})

	RootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memories, err := st.All(cmd.Context())
	if err != nil {
		exitErr("load memories", err)
	}

	counts := map[string]int{}
	for _, m := range memories {
		for _, t := range m.Tags {
			counts[t]++
		}
	}

	if jsonOut {
		printJSON(counts)
		return
	}

	if len(counts) == 0 {
		fmt.Println("No tags found.")
		return
	}

	names := make([]string, 0, len(counts))
	for t := range counts {
		names = append(names, t)
	}
	sort.Strings(names)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return tagStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Tag", "Count")

	for _, name := range names {
		t.Row(name, strconv.Itoa(counts[name]))
	}
	fmt.Println(t.Render())
}

func runTagsAdd(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("invalid id", err)
	}
	tag := args[1]

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memory, err := st.Get(cmd.Context(), id)
	if err != nil {
		exitErr("get memory", err)
	}

	if memory.HasTag(tag) {
		if !quiet {
			fmt.Printf("Memory %d already has tag '%s'\n", id, tag)
		}
		return
	}

	memory.Tags = append(memory.Tags, tag)
	if err := st.Save(cmd.Context(), memory); err != nil {
		exitErr("save memory", err)
	}

	if !quiet {
		fmt.Printf("Added tag '%s' to memory %d\n", tag, id)
	}
}

func runTagsRemove(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("invalid id", err)
	}
	tag := args[1]

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memory, err := st.Get(cmd.Context(), id)
	if err != nil {
		exitErr("get memory", err)
	}

	if !memory.HasTag(tag) {
		if !quiet {
			fmt.Printf("Memory %d doesn't have tag '%s'\n", id, tag)
		}
		return
	}

	kept := memory.Tags[:0]
	for _, t := range memory.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	memory.Tags = kept

	if err := st.Save(cmd.Context(), memory); err != nil {
		exitErr("save memory", err)
	}

	if !quiet {
		fmt.Printf("Removed tag '%s' from memory %d\n", tag, id)
	}
}
