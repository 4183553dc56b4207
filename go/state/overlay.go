// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import "github.com/Fantom-foundation/tokenservice/go/hts"

// Overlay is a writable layer on top of a read-only ledger view. Reads see
// the writes of the overlay first and fall back to the base view. Every write
// is journaled so that the overlay can be rolled back to earlier snapshots.
// The base view is never modified.
type Overlay struct {
	base          hts.LedgerView
	accounts      map[hts.AccountID]entry[hts.Account]
	aliases       map[hts.Address]hts.AccountID
	tokens        map[hts.TokenID]entry[hts.Token]
	relationships map[relationshipKey]entry[hts.Relationship]
	nfts          map[hts.NftID]entry[hts.Nft]
	allowances    map[allowanceKey]entry[int64]
	operators     map[allowanceKey]entry[bool]
	nextEntityNum uint64
	undo          []func()
}

// Snapshot identifies a state of an overlay that can be restored.
type Snapshot int

type entry[V any] struct {
	value   V
	deleted bool
}

// NewOverlay creates an empty overlay on top of the given view.
func NewOverlay(base hts.LedgerView) *Overlay {
	return &Overlay{
		base:          base,
		accounts:      map[hts.AccountID]entry[hts.Account]{},
		aliases:       map[hts.Address]hts.AccountID{},
		tokens:        map[hts.TokenID]entry[hts.Token]{},
		relationships: map[relationshipKey]entry[hts.Relationship]{},
		nfts:          map[hts.NftID]entry[hts.Nft]{},
		allowances:    map[allowanceKey]entry[int64]{},
		operators:     map[allowanceKey]entry[bool]{},
		nextEntityNum: base.NextEntityNum(),
	}
}

// CreateSnapshot marks the current state of the overlay.
func (o *Overlay) CreateSnapshot() Snapshot {
	return Snapshot(len(o.undo))
}

// RestoreSnapshot reverts all writes performed after the given snapshot was
// created. Snapshots created after the given one become invalid.
func (o *Overlay) RestoreSnapshot(snapshot Snapshot) {
	for len(o.undo) > int(snapshot) {
		o.undo[len(o.undo)-1]()
		o.undo = o.undo[:len(o.undo)-1]
	}
}

func lookup[K comparable, V any](m map[K]entry[V], key K, fallback func() (V, bool)) (V, bool) {
	if e, found := m[key]; found {
		if e.deleted {
			var zero V
			return zero, false
		}
		return e.value, true
	}
	return fallback()
}

func write[K comparable, V any](o *Overlay, m map[K]entry[V], key K, e entry[V]) {
	previous, existed := m[key]
	m[key] = e
	o.undo = append(o.undo, func() {
		if existed {
			m[key] = previous
		} else {
			delete(m, key)
		}
	})
}

func (o *Overlay) GetAccount(id hts.AccountID) (hts.Account, bool) {
	return lookup(o.accounts, id, func() (hts.Account, bool) { return o.base.GetAccount(id) })
}

func (o *Overlay) ResolveAlias(alias hts.Address) (hts.AccountID, bool) {
	if id, found := o.aliases[alias]; found {
		return id, true
	}
	return o.base.ResolveAlias(alias)
}

func (o *Overlay) GetToken(id hts.TokenID) (hts.Token, bool) {
	return lookup(o.tokens, id, func() (hts.Token, bool) { return o.base.GetToken(id) })
}

func (o *Overlay) GetRelationship(account hts.AccountID, token hts.TokenID) (hts.Relationship, bool) {
	return lookup(o.relationships, relationshipKey{account, token}, func() (hts.Relationship, bool) {
		return o.base.GetRelationship(account, token)
	})
}

func (o *Overlay) GetNft(id hts.NftID) (hts.Nft, bool) {
	return lookup(o.nfts, id, func() (hts.Nft, bool) { return o.base.GetNft(id) })
}

func (o *Overlay) GetAllowance(owner, spender hts.AccountID, token hts.TokenID) int64 {
	amount, _ := lookup(o.allowances, allowanceKey{owner, spender, token}, func() (int64, bool) {
		return o.base.GetAllowance(owner, spender, token), true
	})
	return amount
}

func (o *Overlay) IsApprovedForAll(owner, operator hts.AccountID, token hts.TokenID) bool {
	approved, _ := lookup(o.operators, allowanceKey{owner, operator, token}, func() (bool, bool) {
		return o.base.IsApprovedForAll(owner, operator, token), true
	})
	return approved
}

func (o *Overlay) NextEntityNum() uint64 {
	return o.nextEntityNum
}

func (o *Overlay) PutAccount(account hts.Account) {
	write(o, o.accounts, account.ID, entry[hts.Account]{value: account})
	if account.Alias != nil {
		alias := *account.Alias
		previous, existed := o.aliases[alias]
		o.aliases[alias] = account.ID
		o.undo = append(o.undo, func() {
			if existed {
				o.aliases[alias] = previous
			} else {
				delete(o.aliases, alias)
			}
		})
	}
	o.reserve(uint64(account.ID))
}

func (o *Overlay) PutToken(token hts.Token) {
	write(o, o.tokens, token.ID, entry[hts.Token]{value: token})
	o.reserve(uint64(token.ID))
}

func (o *Overlay) reserve(num uint64) {
	if num < o.nextEntityNum {
		return
	}
	previous := o.nextEntityNum
	o.nextEntityNum = num + 1
	o.undo = append(o.undo, func() { o.nextEntityNum = previous })
}

func (o *Overlay) PutRelationship(rel hts.Relationship) {
	write(o, o.relationships, relationshipKey{rel.Account, rel.Token}, entry[hts.Relationship]{value: rel})
}

func (o *Overlay) DeleteRelationship(account hts.AccountID, token hts.TokenID) {
	write(o, o.relationships, relationshipKey{account, token}, entry[hts.Relationship]{deleted: true})
}

func (o *Overlay) PutNft(nft hts.Nft) {
	write(o, o.nfts, nft.ID, entry[hts.Nft]{value: nft})
}

func (o *Overlay) DeleteNft(id hts.NftID) {
	write(o, o.nfts, id, entry[hts.Nft]{deleted: true})
}

func (o *Overlay) SetAllowance(owner, spender hts.AccountID, token hts.TokenID, amount int64) {
	write(o, o.allowances, allowanceKey{owner, spender, token}, entry[int64]{value: amount})
}

func (o *Overlay) SetApprovalForAll(owner, operator hts.AccountID, token hts.TokenID, approved bool) {
	write(o, o.operators, allowanceKey{owner, operator, token}, entry[bool]{value: approved})
}
