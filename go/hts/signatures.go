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

//go:generate mockgen -source signatures.go -destination signatures_mock.go -package hts

// SignatureVerifier reports which simple keys are satisfied by the
// full-prefix signatures attached to the current top-level transaction.
type SignatureVerifier interface {
	// IsActive reports whether a signature of the given simple key with a
	// full public key prefix is attached. Non-simple keys are never active.
	IsActive(key Key) bool
}
