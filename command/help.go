package command

import (
	"fmt"
	"strings"
)

// HelpMarkdown renders the command table as a markdown document.
func HelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("| Command | Aliases | Usage |\n")
	b.WriteString("|---|---|---|\n")
	for _, cmd := range registry {
		fmt.Fprintf(&b, "| %s | %s | `%s` |\n", cmd.Summary, strings.Join(cmd.Aliases, ", "), cmd.Usage)
	}
	b.WriteString("\n")
	b.WriteString("Indices are 1-based, as shown by `list`.\n\n")
	b.WriteString("Dates: `2024-05-01 18:00`, `2024-05-01`, `1/5/2024 1800`, `1/5/2024`, ")
	b.WriteString("`today`, `tomorrow`, `in 3 days`, `next friday`.\n\n")
	b.WriteString("Durations: `<count> <unit>` with minutes, hours, days, weeks, months or years.\n\n")
	b.WriteString("Frequencies: daily, weekly, monthly, yearly.\n")
	return b.String()
}
