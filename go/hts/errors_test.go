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
	"testing"
)

func TestConstError_Error(t *testing.T) {
	const myError = ConstError("this is a constant error")
	if want, got := "this is a constant error", myError.Error(); want != got {
		t.Errorf("unexpected error message, wanted %q, got %q", want, got)
	}
	if !errors.Is(myError, ConstError("this is a constant error")) {
		t.Errorf("constant errors with equal messages should match")
	}
}

func TestStatusError_IsMatchesByStatus(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Fail(InvalidTokenID))
	if !errors.Is(err, Fail(InvalidTokenID)) {
		t.Errorf("wrapped status error should match its status")
	}
	if errors.Is(err, Fail(InvalidAccountID)) {
		t.Errorf("status error should not match a different status")
	}
}

func TestStatusOf(t *testing.T) {
	tests := map[string]struct {
		err  error
		want Status
	}{
		"nil":     {nil, Success},
		"status":  {Fail(AccountIsTreasury), AccountIsTreasury},
		"wrapped": {fmt.Errorf("context: %w", Fail(AccountFrozenForToken)), AccountFrozenForToken},
		"other":   {ConstError("boom"), FailInvalid},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.want, StatusOf(test.err); want != got {
				t.Errorf("unexpected status, wanted %v, got %v", want, got)
			}
		})
	}
}
