package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/selection"
)

// editorModel is the state of the open selection editor panel. It exists
// only between open and close/save; closing without saving discards it
// wholesale.
type editorModel struct {
	session *selection.Session
	filter  textinput.Model
	cursor  int

	filterFocused bool
	saving        bool
	errMsg        string
}

func newEditorModel(catalog, selected []string) *editorModel {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter PIDs"
	filter.CharLimit = 64
	return &editorModel{
		session: selection.NewSession(catalog, selected),
		filter:  filter,
	}
}

func (e *editorModel) clampCursor() {
	visible := len(e.session.Visible())
	if e.cursor >= visible {
		e.cursor = visible - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

// handleEditorKey processes keyboard input while the editor panel is open.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor

	// A save in flight cannot be aborted; it completes and applies either
	// way. Swallow everything except a hard quit until it resolves.
	if ed.saving {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if ed.filterFocused {
		switch msg.String() {
		case "enter", "esc":
			ed.filterFocused = false
			ed.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			ed.filter, cmd = ed.filter.Update(msg)
			ed.session.SetFilter(ed.filter.Value())
			ed.clampCursor()
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Close without save: unsaved check state is discarded.
		m.closeEditor()
		return m, nil

	case "/":
		ed.filterFocused = true
		return m, ed.filter.Focus()

	case "j", "down":
		ed.cursor++
		ed.clampCursor()
		return m, nil

	case "k", "up":
		ed.cursor--
		ed.clampCursor()
		return m, nil

	case "g", "home":
		ed.cursor = 0
		return m, nil

	case "G", "end":
		ed.cursor = len(ed.session.Visible()) - 1
		ed.clampCursor()
		return m, nil

	case " ":
		visible := ed.session.Visible()
		if ed.cursor < len(visible) {
			ed.session.Toggle(visible[ed.cursor])
		}
		return m, nil

	case "a":
		ed.session.CheckAllVisible()
		return m, nil

	case "n":
		ed.session.UncheckAllVisible()
		return m, nil

	case "enter", "s":
		ed.saving = true
		ed.errMsg = ""
		result := ed.session.Merge(m.store.Selected())
		return m, saveSelectionCmd(m.ctx, m.client, result)
	}

	return m, nil
}

// closeEditor tears the session down and lifts the poll freeze.
func (m *Model) closeEditor() {
	m.editor = nil
	m.store.EndEdit()
}

// Save messages

type saveDoneMsg struct {
	selected []string
}

type saveFailedMsg struct {
	err error
}

func saveSelectionCmd(ctx context.Context, client pitstop.StateFetcher, pids []string) tea.Cmd {
	return func() tea.Msg {
		selected, err := client.SaveSelection(ctx, pids)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return saveDoneMsg{selected: selected}
	}
}

// renderEditor draws the selection panel: filter field, checkbox list,
// and the action footer.
func (m Model) renderEditor() string {
	ed := m.editor
	st := m.styles

	var b strings.Builder
	b.WriteString(st.PanelTitle.Render("Tracked PIDs"))
	b.WriteString("\n")
	b.WriteString(ed.filter.View())
	b.WriteString("\n\n")

	visible := ed.session.Visible()
	if len(visible) == 0 {
		if len(ed.filter.Value()) > 0 {
			b.WriteString(st.MutedText.Render("  no PIDs match the filter"))
		} else {
			b.WriteString(st.MutedText.Render("  no PIDs known yet"))
		}
	} else {
		rows := m.editorListWindow(visible)
		b.WriteString(rows)
	}

	b.WriteString("\n\n")
	switch {
	case ed.saving:
		b.WriteString(st.WarningText.Render("saving…"))
	case ed.errMsg != "":
		b.WriteString(st.DangerText.Render("save failed: " + ed.errMsg))
		b.WriteString(st.MutedText.Render("  (selection kept; retry with enter)"))
	default:
		b.WriteString(st.MutedText.Render("space toggle · a all · n none · / filter · enter save · esc cancel"))
	}
	return b.String()
}

// editorListWindow renders the visible rows, scrolled so the cursor stays
// on screen.
func (m Model) editorListWindow(visible []string) string {
	ed := m.editor
	st := m.styles

	maxRows := m.height - 8
	if maxRows < 3 {
		maxRows = 3
	}

	start := 0
	if ed.cursor >= maxRows {
		start = ed.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		pid := visible[i]
		box := "[ ]"
		if ed.session.IsChecked(pid) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, pid)
		if i == ed.cursor && !ed.filterFocused {
			b.WriteString(st.Selected.Render("▸ " + line))
		} else {
			b.WriteString(st.Text.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(visible) {
		b.WriteString("\n")
		b.WriteString(st.MutedText.Render(fmt.Sprintf("  … %d more", len(visible)-end)))
	}
	return b.String()
}
