package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/prefs"
	"github.com/five82/gauge/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    pitstop.StateFetcher
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Log       zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    pitstop.StateFetcher
	store     *state.Store
	prefsPath string
	pollTick  time.Duration
	log       zerolog.Logger

	// UI state
	theme  Theme
	styles Styles
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Editor panel (nil while closed)
	editor *editorModel

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		log:       opts.Log,
		theme:     theme,
		styles:    theme.Styles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case saveDoneMsg:
		// The daemon's response is the authoritative selection, even when
		// the panel already closed while the save was in flight.
		m.store.SetSelected(msg.selected)
		m.store.EndEdit()
		m.editor = nil
		return m, fetchSnapshotCmd(m.store)

	case saveFailedMsg:
		m.log.Warn().Err(msg.err).Msg("selection save failed")
		if m.editor != nil {
			// Session stays open with check state intact; the operator
			// retries without re-ticking anything.
			m.editor.saving = false
			m.editor.errMsg = msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.editor != nil {
		b.WriteString(m.renderEditor())
	} else {
		b.WriteString(m.renderDashboard())
	}

	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editor != nil {
		return m.handleEditorKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "e":
		// Open the selection editor: freeze the cached catalog/selection
		// first, then seed the session from the frozen values.
		m.store.BeginEdit()
		m.editor = newEditorModel(m.store.Catalog(), m.store.Selected())
		return m, nil
	}

	return m, nil
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// renderDashboard renders the main summary view.
func (m Model) renderDashboard() string {
	snap := m.snapshot
	st := m.styles
	vehicle := snap.State

	sections := []string{
		renderVehicleCard(vehicle, st),
		renderMILSummary(vehicle, st),
		renderReadingCards(vehicle, m.store.Selected(), st, m.width),
		renderCodesPanel("Stored Codes", vehicle.StoredCodes, st),
		renderCodesPanel("Pending Codes", vehicle.PendingCodes, st),
		renderCodesPanel("Permanent Codes", vehicle.PermanentCodes, st),
	}
	if ff := renderFreezeFrame(vehicle.LastFreezeFrame, st); ff != "" {
		sections = append(sections, ff)
	}
	return strings.Join(sections, "\n\n")
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
