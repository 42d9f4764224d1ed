package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/model"
	"github.com/rcliao/mem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all memories",
		Long: `List all memories with optional filters.

Unlike 'recall', this doesn't search - it lists everything (with filters).

EXAMPLES:
  mem list                          All memories
  mem list --tag preferences        Filter by tag
  mem list --since 2024-01-01       Created after date
  mem list --limit 10 --json        First 10 as JSON
  mem list --session auth-work      Only session memories
  mem list --min-importance 4       Only important memories`,
		Run: runList,
	}

	cmd.Flags().StringArrayP("tag", "t", nil, "Filter to memories with this tag. Repeatable")
	cmd.Flags().String("since", "", "Only memories created after this date (YYYY-MM-DD)")
	cmd.Flags().IntP("limit", "n", 50, "Maximum number of results")
	cmd.Flags().String("session", "", "Only list memories in this session")
	cmd.Flags().Int("min-importance", 0, "Only return memories with importance >= this value (1-5)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	tags, _ := cmd.Flags().GetStringArray("tag")
	since, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")
	session, _ := cmd.Flags().GetString("session")
	minImportance, _ := cmd.Flags().GetInt("min-importance")

	var sinceTime time.Time
	if since != "" {
		var err error
		sinceTime, err = parseDate(since)
		if err != nil {
			exitErr("invalid date", fmt.Errorf("%q (use YYYY-MM-DD)", since))
		}
	}

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	// Fetch extra so post-query filters still fill the limit.
	memories, err := st.List(cmd.Context(), store.ListParams{Since: sinceTime, Limit: limit * 2})
	if err != nil {
		exitErr("list memories", err)
	}

	if len(tags) > 0 {
		memories = filterMemories(memories, func(m model.Memory) bool {
			for _, t := range tags {
				if m.HasTag(t) {
					return true
				}
			}
			return false
		})
	}
	if session != "" {
		memories = filterMemories(memories, func(m model.Memory) bool {
			return m.SessionID == session
		})
	}
	if minImportance > 0 {
		memories = filterMemories(memories, func(m model.Memory) bool {
			return m.Importance >= minImportance
		})
	}

	if len(memories) > limit {
		memories = memories[:limit]
	}

	outputMemories(memories, jsonOut, quiet, nil)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
