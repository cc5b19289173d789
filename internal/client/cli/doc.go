// Package cli provides the interactive StudentHub command-line client.
//
// It wires configuration, the local SQLite store, the gRPC client, the sync
// engine and a REPL. Every command works offline; a background connectivity
// watcher switches the client between online and offline mode and triggers a
// sync cycle on reconnect and on the configured interval.
//
// Commands:
//   - register, login, logout
//   - add class|assignment|task
//   - list [classes|assignments|tasks] [filter]
//   - complete assignment|task <id>
//   - delete class|assignment|task <id>
//   - sync, status, export
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
