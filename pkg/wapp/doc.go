// SPDX-License-Identifier: MPL-2.0

// Package wapp validates a wapp installation package before it is registered
// into the host framework.
//
// An installation package is a directory tree with exactly one app directory
// under warriorframework_py3/katana/katana.wapps. The app directory carries a
// wf_config.json manifest, the routing module the manifest points to, and an
// optional static/ asset tree.
//
// [Validator.IsValid] runs a fixed pipeline and stops at the first failure:
//
//  1. wf_config.json exists, is well-formed JSON matching #Manifest, and has
//     the mandatory keys (app, version, warrior-compatibility,
//     warrior-incompatibility)
//  2. the app descriptor names an existing routing module
//  3. the running framework version is compatible
//  4. every database descriptor key is namespaced with the app name
//  5. static/ follows the required layout
//
// Validation failures are returned as a [ValidationResult], never as Go
// errors. Go errors are reserved for problems that prevent a Validator from
// being built at all, such as an ambiguous app directory.
package wapp
