// SPDX-License-Identifier: MPL-2.0

// Package config handles wappcheck configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/wappcheck/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/wappcheck/config.cue on
// macOS, %APPDATA%\wappcheck\config.cue on Windows), falling back to a
// config.cue in the working directory. Every key can be overridden with a
// WAPPCHECK_* environment variable (e.g. WAPPCHECK_FRAMEWORK_VERSION).
//
// The file is validated against the embedded #Config schema (config_schema.cue)
// before it is merged over the defaults.
package config
