// Package cli provides the interactive registry terminal.
//
// It wires configuration, the store, the registry services, photo storage
// and exports into a REPL. Typical flow: restore or prompt for a session
// (role, then password), show the dashboard, then execute commands. Each
// command belongs to a view and is refused when the session's role may not
// open that view.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
