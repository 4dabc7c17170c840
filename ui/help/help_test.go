package help

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"
)

func sections() []Section {
	return []Section{
		{
			Title: "Rows",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "next row")),
				key.NewBinding(key.WithKeys("x")), // no help text
			},
		},
		{
			Title: "Hidden",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zap"), key.WithDisabled()),
			},
		},
		{
			Title: "Pipes",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("|"), key.WithHelp("|", "split")),
			},
		},
	}
}

func TestMarkdown_SkipsDisabledAndUnlabelled(t *testing.T) {
	md := Markdown(sections())

	if !strings.Contains(md, "## Rows") || !strings.Contains(md, "| `j` | next row |") {
		t.Errorf("missing Rows table:\n%s", md)
	}
	if strings.Contains(md, "Hidden") || strings.Contains(md, "zap") {
		t.Errorf("disabled binding rendered:\n%s", md)
	}
	if strings.Count(md, "| `") != 2 {
		t.Errorf("want 2 binding rows:\n%s", md)
	}
	if !strings.Contains(md, "`\\|`") {
		t.Errorf("pipe not escaped:\n%s", md)
	}
}

func TestRender_ContainsBindings(t *testing.T) {
	out := Render(sections(), 60)
	plain := ansi.Strip(out)
	for _, want := range []string{"next row", "split"} {
		if !strings.Contains(plain, want) {
			t.Errorf("rendered help missing %q", want)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newline not trimmed")
	}
}
