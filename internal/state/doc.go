// Package state provides thread-safe state management for gauge.
//
// The Store is the coordination point between the background poller and the
// UI: the poller writes full snapshots, the UI reads copies on its own
// schedule. It also owns the two pieces of session-sensitive state — the PID
// catalog and the tracked selection — which normally track each poll but are
// frozen while the operator has the selection editor open. That freeze is
// the only shared-mutable-state discipline in the program: a plain boolean
// checked under the store's lock, sufficient because the poller is the sole
// writer of snapshots and the UI the sole opener of sessions.
//
// Update semantics follow the usual last-good-data rule:
//
//	store.Update(state, nil)   // replace snapshot; refresh catalog/selection
//	                           // unless an edit session is open
//	store.Update(nil, err)     // keep previous data, record the error and
//	                           // bump the consecutive-failure count
//
// Both Update and Snapshot copy slices and maps defensively so the UI can
// never observe a snapshot mid-mutation and the poller can never see UI
// edits.
package state
