// Package cli provides swapctl, the interactive command-line client of the
// swap pool.
//
// It wires configuration, the gRPC client and a REPL. Typical flow: prompt
// for a device secret, start a background connectivity watcher, then run
// user commands.
//
// Key features:
//   - Sessions bound to a device secret, or anonymous
//   - Browse the pool with next, react and comment
//   - Upload or swap local files through presigned URLs, or submit links
//   - Manage own uploads: delete, caption, NSFW flag, save forever
//   - Download viewed media to ./swaps
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
