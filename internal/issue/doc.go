// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints for infrastructure errors. The Issue catalog holds
// Markdown guidance, rendered with glamour, for every kind of wapp
// validation failure and for the CLI's own failure modes.
package issue
