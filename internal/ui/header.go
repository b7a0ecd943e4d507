package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderHeader draws the top status line: logo, adapter state, supported
// PID count as reported by the daemon, and data freshness.
func (m Model) renderHeader() string {
	st := m.styles
	snap := m.snapshot

	parts := []string{
		st.Logo.Render("GAUGE"),
		renderAdapterStatus(snap, st),
	}

	if snap.HasState {
		// The daemon's count is authoritative for display even when it
		// disagrees with the length of the name list.
		parts = append(parts, st.MutedText.Render(
			fmt.Sprintf("PIDs supported: %d", snap.State.SupportedCount)))
	}

	if !m.lastUpdated.IsZero() {
		parts = append(parts, st.MutedText.Render(
			"updated "+humanizeAge(time.Since(m.lastUpdated))))
	}

	line := strings.Join(parts, st.MutedText.Render("  │  "))

	hints := "e edit PIDs · T theme · h help · q quit"
	if m.editor != nil {
		hints = "editing tracked PIDs"
	}
	return line + "\n" + st.MutedText.Render(hints)
}

func humanizeAge(d time.Duration) string {
	switch {
	case d < 2*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
