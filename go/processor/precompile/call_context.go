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

import (
	"slices"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

// CallContext describes who is calling the precompile and which contract
// identities may authorize the call.
type CallContext struct {
	// Active is the address of the contract (or account) issuing the call.
	Active hts.Address
	// ActiveAccount is the ledger account of Active, if any.
	ActiveAccount hts.AccountID
	HasActive     bool
	// Origin is the payer of the transaction.
	Origin hts.Address
	// Static is set if any hop on the call chain is a static call.
	Static bool
	// Delegated is set if the active contract runs foreign code.
	Delegated bool
	// Redirect is set for calls arriving through a token proxy.
	Redirect bool
	// ContractIdentities satisfy contract key components.
	ContractIdentities []hts.AccountID
	// DelegateIdentities satisfy delegatable contract key components.
	DelegateIdentities []hts.AccountID
}

// ResolveCallContext derives the call context of the given precompile frame.
// Delegate calls into the precompile are only accepted for token proxies;
// any other delegation fails before state beyond the frame's storage context
// is read.
func ResolveCallContext(frame *hts.CallFrame, view hts.LedgerView) (CallContext, error) {
	if frame == nil {
		return CallContext{}, hts.Fail(hts.FailInvalid)
	}
	ctx := CallContext{
		Active: frame.Sender,
		Origin: frame.Origin(),
		Static: frame.IsStatic(),
	}
	if frame.Kind.IsDelegate() {
		if !isToken(frame.Recipient, view) {
			return CallContext{}, hts.Fail(hts.InvalidFullPrefixSignatureForPrecompile)
		}
		ctx.Redirect = true
	}
	ctx.ActiveAccount, ctx.HasActive = lookupAccount(frame.Sender, view)

	// The caller frame is the innermost frame running in the storage
	// context of the active contract.
	caller := frame.Parent
	for caller != nil && caller.Recipient != ctx.Active {
		caller = caller.Parent
	}
	if caller != nil {
		ctx.Delegated = caller.IsDelegated()
	}

	if ctx.Static || !ctx.HasActive {
		return ctx, nil
	}
	if !ctx.Delegated {
		ctx.ContractIdentities = []hts.AccountID{ctx.ActiveAccount}
	}
	ctx.DelegateIdentities = []hts.AccountID{ctx.ActiveAccount}
	for cur := caller; cur != nil; cur = cur.Parent {
		if id, found := lookupAccount(cur.CodeAddress, view); found && !slices.Contains(ctx.DelegateIdentities, id) {
			ctx.DelegateIdentities = append(ctx.DelegateIdentities, id)
		}
		if !cur.Kind.IsDelegate() {
			break
		}
	}
	return ctx, nil
}

// IsContractIdentity reports whether contract key components naming the
// given account are satisfied.
func (c *CallContext) IsContractIdentity(id hts.AccountID) bool {
	return slices.Contains(c.ContractIdentities, id)
}

// IsDelegateIdentity reports whether delegatable contract key components
// naming the given account are satisfied.
func (c *CallContext) IsDelegateIdentity(id hts.AccountID) bool {
	return slices.Contains(c.DelegateIdentities, id)
}

// IsActive reports whether the given account is the calling contract and may
// act on its own behalf.
func (c *CallContext) IsActive(id hts.AccountID) bool {
	return c.HasActive && !c.Static && c.ActiveAccount == id
}

func lookupAccount(address hts.Address, view hts.LedgerView) (hts.AccountID, bool) {
	if address.IsMirror() {
		id := hts.AccountID(address.EntityNum())
		account, found := view.GetAccount(id)
		return id, found && !account.Deleted
	}
	id, found := view.ResolveAlias(address)
	return id, found
}

func isToken(address hts.Address, view hts.LedgerView) bool {
	if !address.IsMirror() {
		return false
	}
	_, found := view.GetToken(hts.TokenID(address.EntityNum()))
	return found
}
