package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mem/internal/autotag"
	"github.com/rcliao/mem/internal/dedupe"
	"github.com/rcliao/mem/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [content]",
		Short: "Store a new memory",
		Long: `Store a new memory with optional tags and context.

EXAMPLES:
  mem remember "API key is in .env"
  mem remember "User prefers vim" --tag preferences --tag editor
  mem remember "JWT refresh needs work" --context "Auth module review"
  mem remember --file notes.txt --tag imported
  mem remember "The API uses JWT" --auto-tag      # Auto-detect: api, auth
  mem remember "Updated API URL" --supersedes 42  # Replaces old memory
  echo "content" | mem remember

OUTPUT:
  Default:   "Remembered (id=42)" + similar memories if found
  --json:    {"id": 42, "content": "...", "tags": [...]}
  --quiet:   42`,
		Run: runRemember,
	}

	cmd.Flags().StringArrayP("tag", "t", nil, "Tag for categorization. Repeat for multiple: -t foo -t bar")
	cmd.Flags().StringP("context", "c", "", "Why/where this was stored. Searchable via recall")
	cmd.Flags().StringP("source", "s", model.DefaultSource, "Who created this: 'user', 'claude', 'file', etc.")
	cmd.Flags().StringP("file", "f", "", "Read content from file instead of argument")
	cmd.Flags().String("session", "", "Session ID for grouping related memories")
	cmd.Flags().Bool("auto-tag", false, "Automatically add tags based on content keywords")
	cmd.Flags().Bool("suggest-tags", false, "Show suggested tags and prompt to add them")
	cmd.Flags().Int64("supersedes", 0, "ID of memory this replaces")
	cmd.Flags().Int64Slice("see-also", nil, "IDs of related memories. Repeatable")
	cmd.Flags().String("source-url", "", "URL where this information came from")
	cmd.Flags().String("source-file", "", "File path where this information came from (e.g., /path/file.go:42)")
	cmd.Flags().IntP("importance", "i", model.DefaultImportance, "Importance level 1-5")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	tags, _ := cmd.Flags().GetStringArray("tag")
	context, _ := cmd.Flags().GetString("context")
	source, _ := cmd.Flags().GetString("source")
	file, _ := cmd.Flags().GetString("file")
	session, _ := cmd.Flags().GetString("session")
	autoTag, _ := cmd.Flags().GetBool("auto-tag")
	suggestTags, _ := cmd.Flags().GetBool("suggest-tags")
	seeAlso, _ := cmd.Flags().GetInt64Slice("see-also")
	sourceURL, _ := cmd.Flags().GetString("source-url")
	sourceFile, _ := cmd.Flags().GetString("source-file")
	importance, _ := cmd.Flags().GetInt("importance")

	if importance < 1 || importance > 5 {
		exitErr("invalid flag", fmt.Errorf("importance must be 1-5, got %d", importance))
	}

	var content string
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			exitErr("read file", err)
		}
		content = string(b)
	case len(args) > 0:
		content = strings.Join(args, " ")
	default:
		content = readStdin()
	}
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(os.Stderr, "error: no content provided")
		os.Exit(1)
	}

	var supersedes *int64
	if cmd.Flags().Changed("supersedes") {
		v, _ := cmd.Flags().GetInt64("supersedes")
		supersedes = &v
	}

	// Auto-tagging: --auto-tag adds matches silently, --suggest-tags asks.
	var autoAdded []string
	if autoTag || suggestTags {
		var suggested []string
		for _, t := range autotag.Suggest(content) {
			dup := false
			for _, have := range tags {
				if have == t {
					dup = true
					break
				}
			}
			if !dup {
				suggested = append(suggested, t)
			}
		}

		if suggestTags && len(suggested) > 0 && !quiet {
			fmt.Printf("Suggested tags: %s\n", strings.Join(suggested, ", "))
			if confirmPrompt("Add them?", false) {
				tags = append(tags, suggested...)
				autoAdded = suggested
			}
		} else if autoTag {
			tags = append(tags, suggested...)
			autoAdded = suggested
		}
	}

	st, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memory := model.Memory{
		Content:    content,
		Tags:       tags,
		Context:    context,
		Source:     source,
		SessionID:  session,
		Supersedes: supersedes,
		SeeAlso:    seeAlso,
		SourceURL:  sourceURL,
		SourceFile: sourceFile,
		Importance: importance,
	}
	if err := st.Save(cmd.Context(), &memory); err != nil {
		exitErr("save memory", err)
	}

	switch {
	case quiet:
		fmt.Println(memory.ID)
	case jsonOut:
		out := map[string]interface{}{
			"id":      memory.ID,
			"content": memory.Content,
			"tags":    memory.Tags,
		}
		if autoTag {
			out["auto_tags"] = autoAdded
		}
		printJSON(out)
	default:
		suffix := ""
		if len(autoAdded) > 0 {
			suffix = fmt.Sprintf(" [auto-tagged: %s]", strings.Join(autoAdded, ", "))
		}
		fmt.Printf("Remembered (id=%d)%s\n", memory.ID, suffix)

		oracle := dedupe.NewOracle(st)
		similar := oracle.Similar(cmd.Context(), &memory, dedupe.SimilarLimit, dedupe.SimilarThreshold)
		if len(similar) > 0 {
			fmt.Println("Similar existing memories:")
			for _, match := range similar {
				tagSuffix := ""
				if len(match.Memory.Tags) > 0 {
					tagSuffix = fmt.Sprintf(" (tags: %s)", strings.Join(match.Memory.Tags, ", "))
				}
				fmt.Printf("  [%d] %s%s\n", match.Memory.ID, preview(match.Memory.Content, 53), tagSuffix)
			}
		}
	}
}
