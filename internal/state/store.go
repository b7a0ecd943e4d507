package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/gauge/internal/pitstop"
)

// Snapshot represents the latest daemon data available to the UI.
type Snapshot struct {
	State               pitstop.StateResponse
	HasState            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot and owns the cached
// PID catalog and tracked selection. While an edit session is open the
// catalog and selection are frozen: poll updates keep refreshing the rest of
// the snapshot but must never clobber the set the operator is editing.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	catalog  []string
	selected []string
	editing  bool
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility. The catalog and selection
// follow the payload only while no edit session is open.
func (s *Store) Update(state *pitstop.StateResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if state != nil {
		s.snapshot.State = cloneState(*state)
		s.snapshot.HasState = true
		if !s.editing {
			s.catalog = cloneStrings(state.SupportedNames)
			s.selected = cloneStrings(state.SelectedPIDs)
		}
	} else {
		s.snapshot.HasState = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.State = cloneState(s.snapshot.State)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// BeginEdit opens an edit session, freezing the catalog and selection
// against poll updates. Calling it while a session is already open is a
// no-op.
func (s *Store) BeginEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
}

// EndEdit closes the edit session, letting subsequent polls refresh the
// catalog and selection again.
func (s *Store) EndEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
}

// Editing reports whether an edit session is open.
func (s *Store) Editing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

// Catalog returns the last known full PID catalog.
func (s *Store) Catalog() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.catalog)
}

// Selected returns the last known tracked PID set.
func (s *Store) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.selected)
}

// SetSelected replaces the tracked selection with the daemon's authoritative
// set from a successful save. It applies regardless of the edit gate: a save
// that completes after the panel closed still lands.
func (s *Store) SetSelected(pids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = cloneStrings(pids)
}

func cloneState(state pitstop.StateResponse) pitstop.StateResponse {
	dup := state
	dup.DynValues = cloneValueMap(state.DynValues)
	dup.LastFreezeFrame = cloneValueMap(state.LastFreezeFrame)
	dup.SupportedNames = cloneStrings(state.SupportedNames)
	dup.SelectedPIDs = cloneStrings(state.SelectedPIDs)
	dup.StoredCodes = cloneCodes(state.StoredCodes)
	dup.PendingCodes = cloneCodes(state.PendingCodes)
	dup.PermanentCodes = cloneCodes(state.PermanentCodes)
	if state.MIL != nil {
		mil := *state.MIL
		dup.MIL = &mil
	}
	if state.DTCCountReported != nil {
		count := *state.DTCCountReported
		dup.DTCCountReported = &count
	}
	return dup
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}

func cloneCodes(codes []pitstop.TroubleCode) []pitstop.TroubleCode {
	if len(codes) == 0 {
		return nil
	}
	dup := make([]pitstop.TroubleCode, len(codes))
	copy(dup, codes)
	return dup
}

func cloneValueMap(values map[string]any) map[string]any {
	if len(values) == 0 {
		return nil
	}
	dup := make(map[string]any, len(values))
	for k, v := range values {
		dup[k] = v
	}
	return dup
}
