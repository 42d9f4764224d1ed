package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rcliao/mem/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// preview truncates content for table display, rune-safe.
func preview(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max-3]) + "..."
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// scoredOutput is the JSON shape for memories annotated with a BM25 score.
type scoredOutput struct {
	model.Memory
	Score float64 `json:"score"`
}

// outputMemories renders memories in the requested format. scores, when
// non-nil, adds a Score column (table) or score field (JSON).
func outputMemories(memories []model.Memory, asJSON, idsOnly bool, scores map[int64]float64) {
	if idsOnly {
		for _, m := range memories {
			fmt.Println(m.ID)
		}
		return
	}

	if asJSON {
		if scores != nil {
			out := make([]scoredOutput, 0, len(memories))
			for _, m := range memories {
				out = append(out, scoredOutput{Memory: m, Score: scores[m.ID]})
			}
			printJSON(out)
			return
		}
		if memories == nil {
			memories = []model.Memory{}
		}
		printJSON(memories)
		return
	}

	if len(memories) == 0 {
		fmt.Println("No memories found.")
		return
	}

	headers := []string{"ID", "Content", "Tags"}
	if scores != nil {
		headers = append(headers, "Score")
	}
	headers = append(headers, "Created")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 {
				return tagStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)

	for _, m := range memories {
		row := []string{
			fmt.Sprintf("%d", m.ID),
			preview(m.Content, 60),
			joinTags(m.Tags),
		}
		if scores != nil {
			row = append(row, fmt.Sprintf("%.2f", scores[m.ID]))
		}
		row = append(row, m.CreatedAt.Format("2006-01-02 15:04"))
		t.Row(row...)
	}

	fmt.Println(t.Render())
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode json", err)
	}
	fmt.Println(string(b))
}
