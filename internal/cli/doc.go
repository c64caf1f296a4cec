// Package cli provides the interactive BankLedger command-line client.
//
// It wires configuration, local credential storage, the REST API client, and
// an interactive REPL over the transaction ledger. Typical flow: restore a
// persisted session on startup, load the transaction list and the monthly
// summary, and execute user commands.
//
// Key features:
//   - Register / Login / Logout against the ledger server
//   - List transactions and recategorize individual rows
//   - Monthly spending summary with period navigation
//   - CSV bank statement upload
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
