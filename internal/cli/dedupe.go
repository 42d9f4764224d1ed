package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/dedupe"
	"github.com/rcliao/mem/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Find and merge duplicates",
		Long: `Find and merge near-duplicate memories.

EXAMPLES:
  mem dedupe              Interactive: show groups, ask which to merge
  mem dedupe --dry-run    Just show duplicates without action
  mem dedupe --auto       Auto-merge keeping newest

MERGE BEHAVIOR:
  - Tags from all duplicates are combined
  - Newest content is kept
  - Older memories are deleted`,
		Run: runDedupe,
	}

	cmd.Flags().Bool("dry-run", false, "Show duplicates without merging")
	cmd.Flags().Bool("auto", false, "Auto-merge keeping newest content")
	cmd.Flags().Float64("threshold", dedupe.DefaultThreshold, "BM25 score threshold for similarity (lower = more similar)")

	RootCmd.AddCommand(cmd)
}

func runDedupe(cmd *cobra.Command, args []string) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	auto, _ := cmd.Flags().GetBool("auto")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	opts := dedupe.Options{
		DryRun:    dryRun,
		Auto:      auto,
		Threshold: threshold,
	}

	if !quiet {
		opts.OnGroup = func(n, total int, members []model.Memory) {
			if n == 1 {
				fmt.Printf("Found %d duplicate group(s):\n\n", total)
			}
			fmt.Printf("Group %d:\n", n)
			for _, m := range members {
				tagSuffix := ""
				if len(m.Tags) > 0 {
					tagSuffix = fmt.Sprintf(" (tags: %s)", strings.Join(m.Tags, ", "))
				}
				fmt.Printf("  [%d] %s%s (%s)\n", m.ID, preview(m.Content, 63), tagSuffix,
					m.CreatedAt.Format("2006-01-02"))
			}
			fmt.Println()
		}
		opts.OnMerge = func(n int, res dedupe.MergeResult) {
			fmt.Printf("  -> Merged into [%d], deleted %d duplicate(s)\n\n",
				res.SurvivorID, len(res.DeletedIDs))
		}
	}

	// Quiet suppresses the prompt, so interactive mode auto-declines.
	if !dryRun && !auto && !quiet {
		opts.Confirm = func() bool {
			return confirmPrompt("Merge this group (keep newest)?", false)
		}
	}

	runner := dedupe.NewRunner(st)
	report, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		exitErr("dedupe", err)
	}

	if quiet {
		return
	}

	switch {
	case report.Total < 2:
		fmt.Println("Not enough memories to deduplicate.")
	case len(report.Groups) == 0:
		fmt.Println("No duplicates found.")
	case !dryRun:
		fmt.Printf("Merged %d duplicate(s) total.\n", report.Merged)
	}
}
