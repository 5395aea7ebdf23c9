// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"sort"
	"strings"
)

// checkDatabase requires every key of a database descriptor to be prefixed
// with the app name. index is the descriptor's position, for logging only.
func (v *Validator) checkDatabase(index int, db DatabaseDescriptor) ValidationResult {
	if db == nil {
		return v.fail("database", Fail(FailureDatabase, MsgManifestFormat), "index", index, "reason", "descriptor is not an object")
	}

	keys := make([]string, 0, len(db))
	for key := range db {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasPrefix(key, v.appName) {
			return v.fail("database", Fail(FailureDatabase, MsgManifestFormat), "index", index, "key", key)
		}
	}
	return Pass()
}
