package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/logging"
	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/state"
)

type fakeClient struct {
	saved    [][]string
	response []string
	err      error
}

func (f *fakeClient) FetchState(ctx context.Context) (*pitstop.StateResponse, error) {
	return &pitstop.StateResponse{}, nil
}

func (f *fakeClient) SaveSelection(ctx context.Context, pids []string) ([]string, error) {
	f.saved = append(f.saved, pids)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func newTestModel(t *testing.T, client pitstop.StateFetcher, store *state.Store) Model {
	t.Helper()
	m := New(Options{
		Client:    client,
		Store:     store,
		ThemeName: "Terminal",
		PrefsPath: t.TempDir() + "/prefs.toml",
		Log:       logging.Nop(),
	})
	m.ready = true
	m.width = 100
	m.height = 40
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func seedStore(t *testing.T, catalog, selected []string) *state.Store {
	t.Helper()
	store := &state.Store{}
	store.Update(&pitstop.StateResponse{
		SupportedNames: catalog,
		SelectedPIDs:   selected,
	}, nil)
	return store
}

func TestModel_OpenEditorFreezesStore(t *testing.T) {
	store := seedStore(t, []string{"RPM", "SPEED"}, []string{"RPM"})
	m := newTestModel(t, &fakeClient{}, store)

	next, _ := m.handleKey(keyRune('e'))
	m = next.(Model)

	if m.editor == nil {
		t.Fatal("editor = nil after pressing e")
	}
	if !store.Editing() {
		t.Fatal("store not frozen after opening editor")
	}
	if got := m.editor.session.Visible(); !reflect.DeepEqual(got, []string{"RPM", "SPEED"}) {
		t.Fatalf("session seeded with %#v, want sorted catalog", got)
	}
	if !m.editor.session.IsChecked("RPM") || m.editor.session.IsChecked("SPEED") {
		t.Fatal("session check state not seeded from cached selection")
	}
}

func TestModel_SaveSubmitsMergeAndAppliesResponse(t *testing.T) {
	store := seedStore(t, []string{"MAF", "RPM", "SPEED"}, []string{"RPM"})
	client := &fakeClient{response: []string{"MAF", "RPM"}}
	m := newTestModel(t, client, store)

	next, _ := m.handleKey(keyRune('e'))
	m = next.(Model)

	// Check MAF in addition to the seeded RPM, then save.
	m.editor.session.Toggle("MAF")
	next, cmd := m.handleEditorKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.editor.saving {
		t.Fatal("editor not marked saving after enter")
	}
	if cmd == nil {
		t.Fatal("no save command issued")
	}

	msg := cmd()
	done, ok := msg.(saveDoneMsg)
	if !ok {
		t.Fatalf("save command returned %T, want saveDoneMsg", msg)
	}
	if len(client.saved) != 1 || !reflect.DeepEqual(client.saved[0], []string{"MAF", "RPM"}) {
		t.Fatalf("submitted %#v, want sorted merge result [MAF RPM]", client.saved)
	}

	next, _ = m.Update(done)
	m = next.(Model)

	if m.editor != nil {
		t.Fatal("editor still open after successful save")
	}
	if store.Editing() {
		t.Fatal("store still frozen after successful save")
	}
	// The store takes the daemon's returned set, not the local merge.
	if got := store.Selected(); !reflect.DeepEqual(got, []string{"MAF", "RPM"}) {
		t.Fatalf("Selected = %#v, want authoritative response", got)
	}
}

func TestModel_SaveFailureKeepsSessionAndCheckState(t *testing.T) {
	store := seedStore(t, []string{"MAF", "RPM"}, []string{"RPM"})
	client := &fakeClient{err: errors.New("backend busy")}
	m := newTestModel(t, client, store)

	next, _ := m.handleKey(keyRune('e'))
	m = next.(Model)
	m.editor.session.Toggle("MAF")

	next, cmd := m.handleEditorKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	msg := cmd()
	failed, ok := msg.(saveFailedMsg)
	if !ok {
		t.Fatalf("save command returned %T, want saveFailedMsg", msg)
	}

	next, _ = m.Update(failed)
	m = next.(Model)

	if m.editor == nil {
		t.Fatal("editor closed after failed save, want it kept open")
	}
	if m.editor.saving {
		t.Fatal("editor stuck in saving state after failure")
	}
	if m.editor.errMsg == "" {
		t.Fatal("no error surfaced to the operator")
	}
	if !m.editor.session.IsChecked("MAF") || !m.editor.session.IsChecked("RPM") {
		t.Fatal("check state lost after failed save")
	}
	if !store.Editing() {
		t.Fatal("store unfrozen by failed save")
	}
	// Local selection untouched by the failure.
	if got := store.Selected(); !reflect.DeepEqual(got, []string{"RPM"}) {
		t.Fatalf("Selected = %#v, want unchanged [RPM]", got)
	}
}

func TestModel_EscDiscardsSession(t *testing.T) {
	store := seedStore(t, []string{"MAF", "RPM"}, []string{"RPM"})
	m := newTestModel(t, &fakeClient{}, store)

	next, _ := m.handleKey(keyRune('e'))
	m = next.(Model)
	m.editor.session.Toggle("MAF")

	next, _ = m.handleEditorKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	if m.editor != nil {
		t.Fatal("editor still open after esc")
	}
	if store.Editing() {
		t.Fatal("store still frozen after esc")
	}
	if got := store.Selected(); !reflect.DeepEqual(got, []string{"RPM"}) {
		t.Fatalf("Selected = %#v, unsaved edits must be discarded", got)
	}
}

func TestModel_LateSaveCompletionStillApplies(t *testing.T) {
	// A slow save that resolves after the panel is gone still lands its
	// authoritative result.
	store := seedStore(t, []string{"MAF", "RPM"}, []string{"RPM"})
	m := newTestModel(t, &fakeClient{}, store)

	next, _ := m.Update(saveDoneMsg{selected: []string{"MAF"}})
	m = next.(Model)

	if got := store.Selected(); !reflect.DeepEqual(got, []string{"MAF"}) {
		t.Fatalf("Selected = %#v, want late save applied", got)
	}
	if m.editor != nil {
		t.Fatal("editor unexpectedly open")
	}
}

func TestModel_SpaceTogglesRowUnderCursor(t *testing.T) {
	store := seedStore(t, []string{"MAF", "RPM"}, nil)
	m := newTestModel(t, &fakeClient{}, store)

	next, _ := m.handleKey(keyRune('e'))
	m = next.(Model)

	next, _ = m.handleEditorKey(keyRune(' '))
	m = next.(Model)
	if !m.editor.session.IsChecked("MAF") {
		t.Fatal("space did not toggle the first visible row")
	}

	next, _ = m.handleEditorKey(keyRune('j'))
	m = next.(Model)
	next, _ = m.handleEditorKey(keyRune(' '))
	m = next.(Model)
	if !m.editor.session.IsChecked("RPM") {
		t.Fatal("space did not toggle the row under the moved cursor")
	}
}
