// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompile

import "github.com/Fantom-foundation/tokenservice/go/hts"

// KeyEvaluator decides whether keys are satisfied in a call context.
type KeyEvaluator struct {
	// TopLevelSignatures enables simple keys to be satisfied by signatures
	// of the top-level transaction.
	TopLevelSignatures bool
	Signatures         hts.SignatureVerifier
}

// Authorize checks that the key is satisfied. Calls in a static context never
// authorize anything. A key lacking any contract component can only be
// satisfied by signatures; if they are missing the failure is
// InvalidSignature. Otherwise an unsatisfied key fails with
// InvalidFullPrefixSignatureForPrecompile.
func (e *KeyEvaluator) Authorize(key hts.Key, ctx *CallContext) error {
	if ctx.Static {
		return hts.Fail(hts.InvalidFullPrefixSignatureForPrecompile)
	}
	if key != nil && e.IsActive(key, ctx) {
		return nil
	}
	if key == nil || !hts.HasContractComponent(key) {
		return hts.Fail(hts.InvalidSignature)
	}
	return hts.Fail(hts.InvalidFullPrefixSignatureForPrecompile)
}

// AuthorizeAccount checks that the given account authorizes an operation.
// The calling contract authorizes operations on its own account.
func (e *KeyEvaluator) AuthorizeAccount(account *hts.Account, ctx *CallContext) error {
	if ctx.IsActive(account.ID) {
		return nil
	}
	return e.Authorize(account.Key, ctx)
}

// IsActive evaluates the key recursively. All components of thresholds and
// key lists are evaluated.
func (e *KeyEvaluator) IsActive(key hts.Key, ctx *CallContext) bool {
	switch k := key.(type) {
	case hts.Ed25519Key, hts.Secp256k1Key:
		return e.TopLevelSignatures && e.Signatures != nil && e.Signatures.IsActive(k)
	case hts.ContractIDKey:
		return ctx.IsContractIdentity(k.Contract)
	case hts.DelegatableContractIDKey:
		return ctx.IsDelegateIdentity(k.Contract)
	case hts.ThresholdKey:
		return e.countActive(k.Keys, ctx) >= k.Threshold && k.Threshold > 0 && k.Threshold <= len(k.Keys)
	case hts.KeyList:
		return len(k.Keys) > 0 && e.countActive(k.Keys, ctx) == len(k.Keys)
	}
	return false
}

func (e *KeyEvaluator) countActive(keys []hts.Key, ctx *CallContext) int {
	count := 0
	for _, key := range keys {
		if e.IsActive(key, ctx) {
			count++
		}
	}
	return count
}
