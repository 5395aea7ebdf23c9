// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the wappcheck CLI commands.
//
// Commands receive an *App, the composition root that owns the configuration
// provider and output streams, so tests can drive the full command tree with
// in-memory writers and a fixed configuration.
package cmd
