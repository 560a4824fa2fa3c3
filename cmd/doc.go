// Package cmd implements the command-line interface for storedb. It
// provides a hierarchical command structure for inspecting and modifying a
// chunked key-value database stored in a flat property file.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (get, set, delete, keys, an
//     interactive shell, etc.)
//   - util: Shared utilities for command-line processing and configuration
//     (internal use)
//
// See storedb -help for a list of all commands.
package cmd
