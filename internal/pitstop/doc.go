// Package pitstop provides the HTTP client and wire types for the pitstop
// OBD-II dashboard daemon.
//
// The daemon exposes two endpoints gauge cares about:
//
//	GET  /api/state  → StateResponse (full vehicle state snapshot)
//	POST /api/pids   → SaveResponse  (replace the tracked PID set)
//
// Payload quirks are absorbed here rather than upstream: trouble codes may
// arrive as bare strings or {code, desc} objects and are normalized at
// decode time, and unknown fields are ignored so daemon upgrades never
// break the client.
package pitstop
