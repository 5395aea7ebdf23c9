// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/wappcheck/pkg/types"
)

// ExitError carries the process exit code out of a RunE handler: ExitInvalid
// when a package failed validation, ExitUsage when validation could not run.
// Execute maps it to os.Exit so handlers stay testable.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
