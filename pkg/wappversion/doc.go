// SPDX-License-Identifier: MPL-2.0

// Package wappversion answers the host-framework version questions a wapp
// manifest raises: which framework version is running, which versions exist,
// and whether a version falls inside a manifest's range expression.
//
// # Range expressions
//
// A range expression is a comma-separated list of items. Each item is either
// an exact version or an inclusive bound written "lower:upper" (optionally
// wrapped in brackets). Either side of a bound may be omitted to leave it open:
//
//	"3.5.0, 3.6.1"        two exact versions
//	"3.4.0:3.6.0"         everything from 3.4.0 through 3.6.0
//	"[3.5.0:]"            3.5.0 and later
//	"3.1.0, :3.0.0"       3.1.0, or anything up to 3.0.0
//	""                    nothing
//
// Exact versions must appear in the registry's known-version list. Resolution
// never aborts: problems are collected in [Resolution.Err] and the parts that
// did resolve remain usable.
package wappversion
