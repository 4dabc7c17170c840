// Package help renders the key binding reference as markdown.
package help

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/glamour"

	"github.com/miosa/osa-grid/style"
)

// Section groups bindings under a heading.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Markdown builds the help document. Disabled bindings and bindings without
// help text are skipped.
func Markdown(sections []Section) string {
	var b strings.Builder
	b.WriteString("# Keys\n")
	for _, s := range sections {
		rows := 0
		for _, k := range s.Bindings {
			h := k.Help()
			if !k.Enabled() || h.Key == "" {
				continue
			}
			if rows == 0 {
				fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.Title)
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", escapeCell(h.Key), escapeCell(h.Desc))
			rows++
		}
	}
	return b.String()
}

// Render converts the help document to styled ANSI output wrapped at width.
// Falls back to the raw markdown if glamour fails.
func Render(sections []Section, width int) string {
	md := Markdown(sections)
	glamourStyle := "dark"
	if !style.IsDark() {
		glamourStyle = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(max(20, width)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
