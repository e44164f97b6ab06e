// Package driving defines the inbound ports of the capture engine: the
// interfaces the CLI and TUI call to mutate the draft, trigger pushes and
// manage the session.
package driving
