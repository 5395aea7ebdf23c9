// SPDX-License-Identifier: MPL-2.0

package wapp

import "fmt"

// checkCompatibility checks the running framework version against the
// manifest's compatibility and incompatibility ranges. An incompatibility
// match wins over a compatibility match.
func (v *Validator) checkCompatibility(m *Manifest) ValidationResult {
	current, err := v.registry.Current()
	if err != nil {
		return v.fail("compatibility", Fail(FailureCompatibility, MsgCompatibleUnverified), "error", err)
	}
	known, err := v.registry.Known()
	if err != nil {
		return v.fail("compatibility", Fail(FailureCompatibility, MsgCompatibleUnverified), "error", err)
	}

	allowed := v.resolver.Resolve(m.Compatibility(), known)
	disallowed := v.resolver.Resolve(m.Incompatibility(), known)

	inAllowed := allowed.Contains(current)
	inDisallowed := disallowed.Contains(current)

	incompatible := fmt.Sprintf("%s (Version: %s) incompatible with the current %s (Version: %s).",
		v.appName, m.Version(), v.frameworkName, current.Original())

	switch {
	case !inAllowed && allowed.Failed():
		return v.fail("compatibility", Fail(FailureCompatibility, MsgCompatibleUnverified), "error", allowed.Err)
	case !inAllowed:
		return v.fail("compatibility", Fail(FailureCompatibility, incompatible), "range", m.Compatibility())
	case inDisallowed:
		return v.fail("compatibility", Fail(FailureCompatibility, incompatible), "range", m.Incompatibility())
	case disallowed.Failed():
		return v.fail("compatibility", Fail(FailureCompatibility, MsgIncompatibleUnverified), "error", disallowed.Err)
	}
	return Pass()
}
