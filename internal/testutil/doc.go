// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Package builds wapp installation package trees in a temp directory. It
// spells out the on-disk layout itself instead of importing pkg/wapp, so
// wapp's own tests can use it and fixtures stay independent of the code
// under test.
package testutil
