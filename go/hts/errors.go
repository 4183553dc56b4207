// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hts

import (
	"errors"
	"fmt"
)

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// StatusError is an error reporting a failed ledger operation together with
// the status code describing the failure.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("operation failed with status %v", e.Status)
}

// Is makes errors.Is match status errors by their status.
func (e *StatusError) Is(target error) bool {
	other, ok := target.(*StatusError)
	return ok && other.Status == e.Status
}

// Fail creates an error carrying the given status.
func Fail(status Status) error {
	return &StatusError{Status: status}
}

// StatusOf extracts the status of an error produced by Fail. Any other
// non-nil error is reported as FailInvalid; nil maps to Success.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return FailInvalid
}
