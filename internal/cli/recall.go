package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: "Search memories (FTS5)",
		Long: `Search memories using SQLite FTS5 full-text search.

Searches both 'content' and 'context' fields. Results ranked by relevance (BM25).

EXAMPLES:
  mem recall "API key"                    Find memories about API keys
  mem recall "database" --tag config      Search + filter by tag
  mem recall "api" --show-score           Show BM25 relevance scores
  mem recall "api" --recent-first         Sort by date instead of relevance
  mem recall "api" --session auth-work    Search within session only
  mem recall "config" --min-importance 4  Only high-importance memories

SEARCH SYNTAX (FTS5):
  "API key"              Contains both words
  "API OR database"      Contains either word
  "config*"              Prefix match (config, configuration, ...)`,
		Args: cobra.MinimumNArgs(1),
		Run:  runRecall,
	}

	cmd.Flags().StringArrayP("tag", "t", nil, "Filter results to only those with this tag. Repeatable")
	cmd.Flags().IntP("limit", "n", 10, "Maximum number of results to return")
	cmd.Flags().Bool("show-score", false, "Show BM25 relevance scores in output")
	cmd.Flags().Bool("recent-first", false, "Sort by creation date (newest first) instead of relevance")
	cmd.Flags().String("session", "", "Only search memories in this session")
	cmd.Flags().Int("min-importance", 0, "Only return memories with importance >= this value (1-5)")
	cmd.Flags().Bool("boost-important", false, "Prioritize high-importance memories in results")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	tags, _ := cmd.Flags().GetStringArray("tag")
	limit, _ := cmd.Flags().GetInt("limit")
	showScore, _ := cmd.Flags().GetBool("show-score")
	recentFirst, _ := cmd.Flags().GetBool("recent-first")
	session, _ := cmd.Flags().GetString("session")
	minImportance, _ := cmd.Flags().GetInt("min-importance")
	boostImportant, _ := cmd.Flags().GetBool("boost-important")
	query := strings.Join(args, " ")

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	// Fetch extra results so post-search filters still fill the limit.
	var memories []model.Memory
	var scores map[int64]float64
	if showScore || boostImportant {
		ranked, err := st.SearchRanked(cmd.Context(), query, limit*2)
		if err != nil {
			exitErr("search", err)
		}
		scores = make(map[int64]float64, len(ranked))
		for _, r := range ranked {
			memories = append(memories, r.Memory)
			scores[r.ID] = r.Score
		}
	} else {
		memories, err = st.Search(cmd.Context(), query, limit*2)
		if err != nil {
			exitErr("search", err)
		}
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

	if recentFirst {
		sort.SliceStable(memories, func(i, j int) bool {
			return memories[i].CreatedAt.After(memories[j].CreatedAt)
		})
	} else if boostImportant && scores != nil {
		// Importance first (desc), then relevance (asc, more negative = better).
		sort.SliceStable(memories, func(i, j int) bool {
			if memories[i].Importance != memories[j].Importance {
				return memories[i].Importance > memories[j].Importance
			}
			return scores[memories[i].ID] < scores[memories[j].ID]
		})
	}

	if len(memories) > limit {
		memories = memories[:limit]
	}

	if !showScore {
		scores = nil
	}
	outputMemories(memories, jsonOut, quiet, scores)
}

func filterMemories(memories []model.Memory, keep func(model.Memory) bool) []model.Memory {
	out := memories[:0]
	for _, m := range memories {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
