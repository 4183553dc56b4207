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

import "fmt"

// Effect is a pending ledger delta computed by a native operation. Effects
// are held until the outcome of the enclosing transaction is known and are
// then applied in order or discarded as a unit. The set of effects is closed.
type Effect interface {
	apply(Ledger) error
}

// ErrInconsistentEffect is reported if an effect does not fit the state it
// is applied to. Effects computed against a view are always consistent with
// that view; this error signals a broken isolation guarantee.
const ErrInconsistentEffect = ConstError("effect inconsistent with ledger state")

// ApplyEffects applies the given effects in order. On error the ledger may be
// partially updated; callers needing atomicity apply to a snapshot.
func ApplyEffects(ledger Ledger, effects ...Effect) error {
	for _, effect := range effects {
		if err := effect.apply(ledger); err != nil {
			return fmt.Errorf("failed to apply %T: %w", effect, err)
		}
	}
	return nil
}

// HbarAdjust changes the HBAR balance of an account.
type HbarAdjust struct {
	Account AccountID
	Delta   int64
}

// TokenAdjust changes the fungible balance of a relationship.
type TokenAdjust struct {
	Account AccountID
	Token   TokenID
	Delta   int64
}

// SupplyAdjust changes the total supply of a token.
type SupplyAdjust struct {
	Token TokenID
	Delta int64
}

// NftMint creates a new serial owned by the given account.
type NftMint struct {
	ID       NftID
	Owner    AccountID
	Metadata []byte
}

// NftBurn removes a serial.
type NftBurn struct {
	ID NftID
}

// NftMove transfers ownership of a serial and clears its approval.
type NftMove struct {
	ID   NftID
	From AccountID
	To   AccountID
}

// RelationshipCreate associates an account with a token.
type RelationshipCreate struct {
	Relationship Relationship
}

// RelationshipRemove dissociates an account from a token.
type RelationshipRemove struct {
	Account AccountID
	Token   TokenID
}

// FreezeSet updates the freeze flag of a relationship.
type FreezeSet struct {
	Account AccountID
	Token   TokenID
	Frozen  bool
}

// KycSet updates the KYC flag of a relationship.
type KycSet struct {
	Account AccountID
	Token   TokenID
	Granted bool
}

// PauseSet updates the pause flag of a token.
type PauseSet struct {
	Token  TokenID
	Paused bool
}

// TokenDelete marks a token as deleted.
type TokenDelete struct {
	Token TokenID
}

// AllowanceSet replaces a fungible or HBAR allowance.
type AllowanceSet struct {
	Owner   AccountID
	Spender AccountID
	Token   TokenID
	Amount  int64
}

// AllowanceConsume reduces a fungible or HBAR allowance.
type AllowanceConsume struct {
	Owner   AccountID
	Spender AccountID
	Token   TokenID
	Amount  int64
}

// NftApprovalSet grants (or, with a zero spender, revokes) a serial approval.
type NftApprovalSet struct {
	ID      NftID
	Spender AccountID
}

// OperatorApprovalSet grants or revokes an approved-for-all operator.
type OperatorApprovalSet struct {
	Owner    AccountID
	Operator AccountID
	Token    TokenID
	Approved bool
}

// AccountCreate materializes a new account.
type AccountCreate struct {
	Account Account
}

func (e HbarAdjust) apply(l Ledger) error {
	account, found := l.GetAccount(e.Account)
	if !found || account.Balance+e.Delta < 0 {
		return ErrInconsistentEffect
	}
	account.Balance += e.Delta
	l.PutAccount(account)
	return nil
}

func (e TokenAdjust) apply(l Ledger) error {
	rel, found := l.GetRelationship(e.Account, e.Token)
	if !found || rel.Balance+e.Delta < 0 {
		return ErrInconsistentEffect
	}
	rel.Balance += e.Delta
	l.PutRelationship(rel)
	return nil
}

func (e SupplyAdjust) apply(l Ledger) error {
	token, found := l.GetToken(e.Token)
	if !found || token.TotalSupply+e.Delta < 0 {
		return ErrInconsistentEffect
	}
	token.TotalSupply += e.Delta
	l.PutToken(token)
	return nil
}

func (e NftMint) apply(l Ledger) error {
	if _, found := l.GetNft(e.ID); found {
		return ErrInconsistentEffect
	}
	token, found := l.GetToken(e.ID.Token)
	if !found {
		return ErrInconsistentEffect
	}
	if e.ID.Serial > token.LastSerial {
		token.LastSerial = e.ID.Serial
		l.PutToken(token)
	}
	l.PutNft(Nft{ID: e.ID, Owner: e.Owner, Metadata: e.Metadata})
	return changeNftCount(l, e.Owner, e.ID.Token, 1)
}

func (e NftBurn) apply(l Ledger) error {
	nft, found := l.GetNft(e.ID)
	if !found {
		return ErrInconsistentEffect
	}
	l.DeleteNft(e.ID)
	return changeNftCount(l, nft.Owner, e.ID.Token, -1)
}

func (e NftMove) apply(l Ledger) error {
	nft, found := l.GetNft(e.ID)
	if !found || nft.Owner != e.From {
		return ErrInconsistentEffect
	}
	nft.Owner = e.To
	nft.Spender = 0
	l.PutNft(nft)
	if err := changeNftCount(l, e.From, e.ID.Token, -1); err != nil {
		return err
	}
	return changeNftCount(l, e.To, e.ID.Token, 1)
}

func changeNftCount(l Ledger, owner AccountID, token TokenID, delta int64) error {
	account, found := l.GetAccount(owner)
	if !found {
		return ErrInconsistentEffect
	}
	account.NumNftsOwned += delta
	l.PutAccount(account)
	return TokenAdjust{Account: owner, Token: token, Delta: delta}.apply(l)
}

func (e RelationshipCreate) apply(l Ledger) error {
	rel := e.Relationship
	if _, found := l.GetRelationship(rel.Account, rel.Token); found {
		return ErrInconsistentEffect
	}
	account, found := l.GetAccount(rel.Account)
	if !found {
		return ErrInconsistentEffect
	}
	account.NumAssociations++
	if rel.Automatic {
		account.UsedAutoAssociations++
	}
	l.PutAccount(account)
	l.PutRelationship(rel)
	return nil
}

func (e RelationshipRemove) apply(l Ledger) error {
	rel, found := l.GetRelationship(e.Account, e.Token)
	if !found {
		return ErrInconsistentEffect
	}
	account, found := l.GetAccount(e.Account)
	if !found {
		return ErrInconsistentEffect
	}
	account.NumAssociations--
	if rel.Automatic {
		account.UsedAutoAssociations--
	}
	l.PutAccount(account)
	l.DeleteRelationship(e.Account, e.Token)
	return nil
}

func (e FreezeSet) apply(l Ledger) error {
	rel, found := l.GetRelationship(e.Account, e.Token)
	if !found {
		return ErrInconsistentEffect
	}
	rel.Frozen = e.Frozen
	l.PutRelationship(rel)
	return nil
}

func (e KycSet) apply(l Ledger) error {
	rel, found := l.GetRelationship(e.Account, e.Token)
	if !found {
		return ErrInconsistentEffect
	}
	rel.KycGranted = e.Granted
	l.PutRelationship(rel)
	return nil
}

func (e PauseSet) apply(l Ledger) error {
	token, found := l.GetToken(e.Token)
	if !found {
		return ErrInconsistentEffect
	}
	token.Paused = e.Paused
	l.PutToken(token)
	return nil
}

func (e TokenDelete) apply(l Ledger) error {
	token, found := l.GetToken(e.Token)
	if !found || token.Deleted {
		return ErrInconsistentEffect
	}
	token.Deleted = true
	l.PutToken(token)
	return nil
}

func (e AllowanceSet) apply(l Ledger) error {
	if e.Amount < 0 {
		return ErrInconsistentEffect
	}
	l.SetAllowance(e.Owner, e.Spender, e.Token, e.Amount)
	return nil
}

func (e AllowanceConsume) apply(l Ledger) error {
	remaining := l.GetAllowance(e.Owner, e.Spender, e.Token) - e.Amount
	if e.Amount < 0 || remaining < 0 {
		return ErrInconsistentEffect
	}
	l.SetAllowance(e.Owner, e.Spender, e.Token, remaining)
	return nil
}

func (e NftApprovalSet) apply(l Ledger) error {
	nft, found := l.GetNft(e.ID)
	if !found {
		return ErrInconsistentEffect
	}
	nft.Spender = e.Spender
	l.PutNft(nft)
	return nil
}

func (e OperatorApprovalSet) apply(l Ledger) error {
	l.SetApprovalForAll(e.Owner, e.Operator, e.Token, e.Approved)
	return nil
}

func (e AccountCreate) apply(l Ledger) error {
	if _, found := l.GetAccount(e.Account.ID); found {
		return ErrInconsistentEffect
	}
	if e.Account.Alias != nil {
		if _, found := l.ResolveAlias(*e.Account.Alias); found {
			return ErrInconsistentEffect
		}
	}
	l.PutAccount(e.Account)
	return nil
}
