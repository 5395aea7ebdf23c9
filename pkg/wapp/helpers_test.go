// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"testing"

	"github.com/invowk/wappcheck/pkg/wappversion"
)

func testRegistry(t *testing.T) wappversion.Registry {
	t.Helper()
	reg, err := wappversion.NewStaticRegistry("3.6.0", []string{"3.3.0", "3.4.0", "3.5.0", "3.6.0"})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func mustValidator(t *testing.T, root string, opts ...Option) *Validator {
	t.Helper()
	v, err := New(root, testRegistry(t), opts...)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", root, err)
	}
	return v
}
