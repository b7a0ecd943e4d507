// Package selection implements the PID selection edit session: the filtered
// window over the catalog, per-row check state, and the merge that folds the
// windowed edit back into the full tracked set.
package selection

import (
	"sort"
	"strings"
)

// Session holds the working state of one edit of the tracked PID set. It is
// created when the editor opens and discarded on close or save success;
// nothing here survives the session.
type Session struct {
	catalog []string
	filter  string
	visible []string
	checked map[string]bool
}

// NewSession seeds a session from the cached catalog and tracked selection.
// The catalog is sorted once; the initial filter is empty, so every catalog
// entry starts visible.
func NewSession(catalog, selected []string) *Session {
	s := &Session{
		catalog: make([]string, len(catalog)),
		checked: make(map[string]bool, len(selected)),
	}
	copy(s.catalog, catalog)
	sort.Strings(s.catalog)
	for _, pid := range selected {
		s.checked[pid] = true
	}
	s.refilter()
	return s
}

// SetFilter re-derives the visible window as the case-insensitive substring
// match over the catalog. Check state is untouched: filtering changes which
// rows can be edited, never what the operator already decided.
func (s *Session) SetFilter(query string) {
	s.filter = query
	s.refilter()
}

// Filter returns the active filter query.
func (s *Session) Filter() string {
	return s.filter
}

// Visible returns the filtered catalog in lexicographic order.
func (s *Session) Visible() []string {
	dup := make([]string, len(s.visible))
	copy(dup, s.visible)
	return dup
}

// IsChecked reports the working check state for a PID.
func (s *Session) IsChecked(pid string) bool {
	return s.checked[pid]
}

// Toggle flips the check state of a visible row. Rows outside the current
// window are not editable and the call is ignored for them.
func (s *Session) Toggle(pid string) {
	for _, name := range s.visible {
		if name == pid {
			s.checked[pid] = !s.checked[pid]
			return
		}
	}
}

// CheckAllVisible ticks every row in the current window.
func (s *Session) CheckAllVisible() {
	for _, pid := range s.visible {
		s.checked[pid] = true
	}
}

// UncheckAllVisible clears every row in the current window. Hidden rows keep
// their state, consistent with the merge rule.
func (s *Session) UncheckAllVisible() {
	for _, pid := range s.visible {
		s.checked[pid] = false
	}
}

// Merge reconciles the session against the full tracked set:
//
//	result = (existing − visible) ∪ (visible ∩ checked)
//
// Identifiers outside the window keep their prior membership verbatim — they
// were never exposed for editing. Identifiers inside the window are wholly
// determined by their checkbox. The result is deduplicated and sorted so the
// payload sent to the daemon is deterministic.
func (s *Session) Merge(existing []string) []string {
	visible := make(map[string]bool, len(s.visible))
	for _, pid := range s.visible {
		visible[pid] = true
	}

	member := make(map[string]bool, len(existing))
	for _, pid := range existing {
		if !visible[pid] {
			member[pid] = true
		}
	}
	for _, pid := range s.visible {
		if s.checked[pid] {
			member[pid] = true
		}
	}

	result := make([]string, 0, len(member))
	for pid := range member {
		result = append(result, pid)
	}
	sort.Strings(result)
	return result
}

func (s *Session) refilter() {
	query := strings.ToLower(strings.TrimSpace(s.filter))
	if query == "" {
		s.visible = make([]string, len(s.catalog))
		copy(s.visible, s.catalog)
		return
	}
	s.visible = s.visible[:0]
	for _, pid := range s.catalog {
		if strings.Contains(strings.ToLower(pid), query) {
			s.visible = append(s.visible, pid)
		}
	}
}
