// Package ui provides the Bubble Tea terminal interface for gauge.
//
// The dashboard is a pure projection of the latest store snapshot: a 1 s
// tick re-reads the store and re-renders, so the view is always at most one
// tick behind the poller. The selection editor is the only stateful surface;
// opening it freezes the store's catalog/selection (see internal/state) and
// all edits happen against an internal/selection session until save or
// cancel.
package ui
