package ui

import (
	"fmt"
	"strings"
)

// renderHelp draws the key binding overlay. Any key dismisses it.
func (m Model) renderHelp() string {
	st := m.styles

	bindings := []struct{ key, desc string }{
		{"e", "Edit tracked PIDs"},
		{"T", "Cycle theme"},
		{"h/?", "Help"},
		{"q", "Quit"},
		{"", ""},
		{"/", "Filter PID list (editor)"},
		{"space", "Toggle PID (editor)"},
		{"a", "Check all visible (editor)"},
		{"n", "Uncheck all visible (editor)"},
		{"enter", "Save selection (editor)"},
		{"esc", "Close without saving (editor)"},
	}

	var b strings.Builder
	b.WriteString(st.PanelTitle.Render("Key Bindings"))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		if binding.key == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			st.AccentText.Render(fmt.Sprintf("%-7s", binding.key)),
			st.Text.Render(binding.desc)))
	}
	b.WriteString("\n")
	b.WriteString(st.MutedText.Render("press any key to close"))
	return b.String()
}
