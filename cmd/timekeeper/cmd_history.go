package main

import (
	"fmt"
	"strings"

	"timekeeper/internal/api"
	"timekeeper/internal/journal"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyRaw   bool
)

// historyCmd prints logged activities
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged activities and tonight's progress",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	client := api.NewClient(cfg.Client.BaseURL, cfg.GetClientTimeout())
	logs, err := client.ListLogs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	now := clock.Now()
	limit := historyLimit
	if limit <= 0 {
		limit = cfg.UI.HistoryLimit
	}
	md := historyMarkdown(journal.RenderHistory(logs, now.Location()), journal.UpdateProgress(logs, now), limit)

	if historyRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// historyMarkdown lays out progress and history as a markdown document.
func historyMarkdown(rows []journal.HistoryRow, p journal.Progress, limit int) string {
	var sb strings.Builder

	sb.WriteString("# Tonight\n\n")
	marks := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		if s.Active {
			marks = append(marks, "**● "+s.Label+"**")
		} else {
			marks = append(marks, "○ "+s.Label)
		}
	}
	sb.WriteString(strings.Join(marks, " · "))
	fmt.Fprintf(&sb, "\n\n%d of %d slots logged (%.0f%%)\n\n", p.Matched, len(p.Slots), p.Percent)

	sb.WriteString("# History\n\n")
	if len(rows) == 0 {
		sb.WriteString("_No activity logged yet._\n")
		return sb.String()
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	sb.WriteString("| Activity | Time | Slot |\n")
	sb.WriteString("|----------|------|------|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(r.Activity), r.Time, r.Slot)
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
