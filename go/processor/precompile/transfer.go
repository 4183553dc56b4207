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
	"math/big"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

// fungibleChange is a balance change with its resolved account.
type fungibleChange struct {
	address  hts.Address
	amount   int64
	approval bool
	account  hts.Account
}

func (c *fungibleChange) isDebit() bool {
	return c.amount < 0
}

// nftChange is a serial move with its resolved accounts.
type nftChange struct {
	sender   hts.Address
	receiver hts.Address
	serial   int64
	approval bool
	from     hts.Account
	to       hts.Account
}

type tokenChanges struct {
	address  hts.Address
	token    hts.Token
	fungible []fungibleChange
	nfts     []nftChange
}

// transfer is a set of balance changes executed as a unit.
type transfer struct {
	hbar   []fungibleChange
	tokens []tokenChanges
}

func toFungibleChanges(changes []AccountAmount) []fungibleChange {
	res := make([]fungibleChange, 0, len(changes))
	for _, change := range changes {
		res = append(res, fungibleChange{
			address:  change.Account,
			amount:   change.Amount,
			approval: change.IsApproval,
		})
	}
	return res
}

func toNftChanges(moves []NftExchange) []nftChange {
	res := make([]nftChange, 0, len(moves))
	for _, move := range moves {
		res = append(res, nftChange{
			sender:   move.Sender,
			receiver: move.Receiver,
			serial:   move.Serial,
			approval: move.IsApproval,
		})
	}
	return res
}

func (x *execution) transferFungible(op TransferFungible) error {
	changes := toFungibleChanges(op.Changes)
	if op.FromCaller {
		var total int64
		for _, change := range op.Changes {
			total += change.Amount
		}
		changes = append([]fungibleChange{{address: x.ctx.Active, amount: -total}}, changes...)
	}
	t := &transfer{tokens: []tokenChanges{{address: op.Token, fungible: changes}}}
	if err := x.executeTransfer(t); err != nil {
		return err
	}
	if op.FromCaller {
		x.values = []any{true}
		for _, change := range changes[1:] {
			x.emit(transferLog(op.Token, x.ctx.Active, change.address, change.amount, false))
		}
	}
	return nil
}

func (x *execution) transferNFT(op TransferNFT) error {
	t := &transfer{tokens: []tokenChanges{{address: op.Token, nfts: toNftChanges(op.Moves)}}}
	return x.executeTransfer(t)
}

func (x *execution) transferBatch(op TransferBatch) error {
	t := &transfer{hbar: toFungibleChanges(op.Hbar)}
	for _, list := range op.Tokens {
		t.tokens = append(t.tokens, tokenChanges{
			address:  list.Token,
			fungible: toFungibleChanges(list.Changes),
			nfts:     toNftChanges(list.Moves),
		})
	}
	return x.executeTransfer(t)
}

// transferFrom moves fungible units on behalf of their owner. The spender is
// the calling contract and must hold a sufficient allowance.
func (x *execution) transferFrom(token, from, to hts.Address, amount int64) error {
	if amount < 0 {
		return hts.Fail(hts.InvalidAccountAmounts)
	}
	t := &transfer{tokens: []tokenChanges{{
		address: token,
		fungible: []fungibleChange{
			{address: from, amount: -amount, approval: true},
			{address: to, amount: amount},
		},
	}}}
	if err := x.executeTransfer(t); err != nil {
		return err
	}
	x.emit(transferLog(token, from, to, amount, false))
	return nil
}

func (x *execution) transferFromNFT(token, from, to hts.Address, serial int64) error {
	t := &transfer{tokens: []tokenChanges{{
		address: token,
		nfts:    []nftChange{{sender: from, receiver: to, serial: serial, approval: true}},
	}}}
	if err := x.executeTransfer(t); err != nil {
		return err
	}
	x.emit(transferLog(token, from, to, serial, true))
	return nil
}

// ercTransferFrom interprets the ERC transferFrom according to the type of
// the addressed token.
func (x *execution) ercTransferFrom(op ErcTransferFrom) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.Type == hts.NonFungibleUnique {
		x.record.Kind = hts.OpTransferFromNFT
		x.void = true
		return x.transferFromNFT(op.Token, op.From, op.To, op.Value)
	}
	if err := x.transferFrom(op.Token, op.From, op.To, op.Value); err != nil {
		return err
	}
	x.values = []any{true}
	return nil
}

// executeTransfer validates and applies a transfer. Checks run in phases;
// within each phase HBAR changes precede token changes, which are visited in
// the order given.
func (x *execution) executeTransfer(t *transfer) error {
	for _, phase := range []func(*transfer) error{
		x.resolveParties,
		x.checkAssociations,
		x.checkFreezeAndKyc,
		x.checkAuthorization,
		x.consumeAllowances,
		x.moveBalances,
		x.assessCustomFees,
	} {
		if err := phase(t); err != nil {
			return err
		}
	}
	x.recordTransfer(t)
	return nil
}

func (x *execution) resolveParties(t *transfer) error {
	for i := range t.hbar {
		if err := x.resolveChange(&t.hbar[i]); err != nil {
			return err
		}
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		token, err := x.token(list.address)
		if err != nil {
			return err
		}
		if token.Paused {
			return hts.Fail(hts.TokenIsPaused)
		}
		if len(list.fungible) > 0 && token.Type != hts.FungibleCommon {
			return hts.Fail(hts.AccountAmountTransfersOnlyAllowedForFungibleCommon)
		}
		if len(list.nfts) > 0 && token.Type != hts.NonFungibleUnique {
			return hts.Fail(hts.InvalidNftID)
		}
		list.token = token
		for j := range list.fungible {
			if err := x.resolveChange(&list.fungible[j]); err != nil {
				return err
			}
		}
		for j := range list.nfts {
			move := &list.nfts[j]
			if move.from, err = x.account(move.sender, missingSender(move.approval)); err != nil {
				return err
			}
			if move.to, err = x.receiver(move.receiver); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *execution) resolveChange(change *fungibleChange) error {
	var err error
	if change.isDebit() {
		change.account, err = x.account(change.address, missingSender(change.approval))
	} else {
		change.account, err = x.receiver(change.address)
	}
	return err
}

func missingSender(approval bool) hts.Status {
	if approval {
		return hts.InvalidAllowanceOwnerID
	}
	return hts.InvalidAccountID
}

func (x *execution) checkAssociations(t *transfer) error {
	for i := range t.tokens {
		list := &t.tokens[i]
		for _, change := range list.fungible {
			if err := x.ensureAssociated(change.account.ID, &list.token, !change.isDebit()); err != nil {
				return err
			}
		}
		for _, move := range list.nfts {
			if err := x.ensureAssociated(move.from.ID, &list.token, false); err != nil {
				return err
			}
			if err := x.ensureAssociated(move.to.ID, &list.token, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureAssociated checks that the account is associated with the token.
// Receivers with free auto-association slots are associated on the fly.
func (x *execution) ensureAssociated(id hts.AccountID, token *hts.Token, receiving bool) error {
	if _, found := x.view.GetRelationship(id, token.ID); found {
		return nil
	}
	account, found := x.view.GetAccount(id)
	if !found || !receiving || account.MaxAutoAssociations == 0 {
		return hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	if account.MaxAutoAssociations > 0 && account.UsedAutoAssociations >= account.MaxAutoAssociations {
		return hts.Fail(hts.NoRemainingAutomaticAssociations)
	}
	if limit := x.config.MaxTokensPerAccount; limit > 0 && account.NumAssociations >= limit {
		return hts.Fail(hts.TokensPerAccountLimitExceeded)
	}
	return x.apply(hts.RelationshipCreate{Relationship: newRelationship(id, token, true)})
}

func (x *execution) checkFreezeAndKyc(t *transfer) error {
	for i := range t.tokens {
		list := &t.tokens[i]
		for _, change := range list.fungible {
			if err := x.checkUsable(change.account.ID, &list.token); err != nil {
				return err
			}
		}
		for _, move := range list.nfts {
			if err := x.checkUsable(move.from.ID, &list.token); err != nil {
				return err
			}
			if err := x.checkUsable(move.to.ID, &list.token); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *execution) checkUsable(id hts.AccountID, token *hts.Token) error {
	rel, found := x.view.GetRelationship(id, token.ID)
	if !found {
		return hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	if rel.Frozen {
		return hts.Fail(hts.AccountFrozenForToken)
	}
	if token.KycKey != nil && !rel.KycGranted {
		return hts.Fail(hts.AccountKycNotGrantedForToken)
	}
	return nil
}

// checkAuthorization requires every owner debited without an approval and
// every receiver demanding it to authorize the transfer. Approved debits in
// a static context are rejected.
func (x *execution) checkAuthorization(t *transfer) error {
	for i := range t.hbar {
		if err := x.authorizeChange(&t.hbar[i], hts.HBAR); err != nil {
			return err
		}
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		for j := range list.fungible {
			if err := x.authorizeChange(&list.fungible[j], list.token.ID); err != nil {
				return err
			}
		}
		for j := range list.nfts {
			move := &list.nfts[j]
			if err := x.authorizeDebit(&move.from, &move.approval, func() bool {
				return x.mayMoveNft(move.from.ID, hts.NftID{Token: list.token.ID, Serial: move.serial})
			}); err != nil {
				return err
			}
			if err := x.authorizeReceiver(&move.to); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *execution) authorizeChange(change *fungibleChange, token hts.TokenID) error {
	if !change.isDebit() {
		return x.authorizeReceiver(&change.account)
	}
	return x.authorizeDebit(&change.account, &change.approval, func() bool {
		return x.allowanceOf(change.account.ID, token) >= -change.amount
	})
}

// authorizeDebit checks the owner's consent to a debit. If the owner does
// not sign and fallback to approvals is enabled, a sufficient allowance
// turns the debit into an approved one.
func (x *execution) authorizeDebit(owner *hts.Account, approval *bool, allowed func() bool) error {
	if *approval {
		if x.ctx.Static {
			return hts.Fail(hts.InvalidFullPrefixSignatureForPrecompile)
		}
		return nil
	}
	err := x.authorizeAccount(owner)
	if err != nil && x.config.AllowFallbackToApprovals && !x.ctx.Static && allowed() {
		*approval = true
		return nil
	}
	return err
}

func (x *execution) authorizeReceiver(account *hts.Account) error {
	if !account.ReceiverSigRequired {
		return nil
	}
	return x.authorizeAccount(account)
}

// allowanceOf returns the allowance granted by the owner to the calling
// contract.
func (x *execution) allowanceOf(owner hts.AccountID, token hts.TokenID) int64 {
	if !x.ctx.HasActive {
		return 0
	}
	return x.view.GetAllowance(owner, x.ctx.ActiveAccount, token)
}

// mayMoveNft reports whether the calling contract is approved to move the
// serial on behalf of its owner.
func (x *execution) mayMoveNft(owner hts.AccountID, id hts.NftID) bool {
	if !x.ctx.HasActive {
		return false
	}
	spender := x.ctx.ActiveAccount
	if nft, found := x.view.GetNft(id); found && nft.Spender == spender {
		return true
	}
	return x.view.IsApprovedForAll(owner, spender, id.Token)
}

// spendAllowance consumes the allowance of the calling contract.
func (x *execution) spendAllowance(owner hts.AccountID, token hts.TokenID, amount int64) error {
	allowance := x.allowanceOf(owner, token)
	if allowance == 0 {
		return hts.Fail(hts.SpenderDoesNotHaveAllowance)
	}
	if allowance < amount {
		return hts.Fail(hts.AmountExceedsAllowance)
	}
	return x.apply(hts.AllowanceConsume{
		Owner:   owner,
		Spender: x.ctx.ActiveAccount,
		Token:   token,
		Amount:  amount,
	})
}

func (x *execution) consumeAllowances(t *transfer) error {
	for _, change := range t.hbar {
		if change.isDebit() && change.approval {
			if err := x.spendAllowance(change.account.ID, hts.HBAR, -change.amount); err != nil {
				return err
			}
		}
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		for _, change := range list.fungible {
			if change.isDebit() && change.approval {
				if err := x.spendAllowance(change.account.ID, list.token.ID, -change.amount); err != nil {
					return err
				}
			}
		}
		for _, move := range list.nfts {
			id := hts.NftID{Token: list.token.ID, Serial: move.serial}
			if _, found := x.view.GetNft(id); !found {
				return hts.Fail(hts.InvalidNftID)
			}
			if move.approval && !x.mayMoveNft(move.from.ID, id) {
				return hts.Fail(hts.SpenderDoesNotHaveAllowance)
			}
		}
	}
	return nil
}

// moveBalances checks net balances and the zero-sum rule and applies the
// adjustments. Credits are applied before debits so accounts appearing on
// both sides only need a sufficient net balance.
func (x *execution) moveBalances(t *transfer) error {
	hbarNet := map[hts.AccountID]int64{}
	for _, change := range t.hbar {
		hbarNet[change.account.ID] += change.amount
	}
	for id, net := range hbarNet {
		account, _ := x.view.GetAccount(id)
		if account.Balance+net < 0 {
			return hts.Fail(hts.InsufficientAccountBalance)
		}
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		net := map[hts.AccountID]int64{}
		for _, change := range list.fungible {
			net[change.account.ID] += change.amount
		}
		for id, delta := range net {
			rel, _ := x.view.GetRelationship(id, list.token.ID)
			if rel.Balance+delta < 0 {
				return hts.Fail(hts.InsufficientTokenBalance)
			}
		}
		for _, move := range list.nfts {
			id := hts.NftID{Token: list.token.ID, Serial: move.serial}
			nft, found := x.view.GetNft(id)
			if !found {
				return hts.Fail(hts.InvalidNftID)
			}
			if nft.Owner != move.from.ID {
				return hts.Fail(hts.SenderDoesNotOwnNftSerialNo)
			}
			if err := x.apply(hts.NftMove{ID: id, From: move.from.ID, To: move.to.ID}); err != nil {
				return err
			}
		}
	}

	if sum(t.hbar) != 0 {
		return hts.Fail(hts.InvalidAccountAmounts)
	}
	for i := range t.tokens {
		if sum(t.tokens[i].fungible) != 0 {
			return hts.Fail(hts.TransfersNotZeroSumForToken)
		}
	}

	for _, credits := range []bool{true, false} {
		for _, change := range t.hbar {
			if change.amount != 0 && change.isDebit() != credits {
				if err := x.apply(hts.HbarAdjust{Account: change.account.ID, Delta: change.amount}); err != nil {
					return err
				}
			}
		}
		for i := range t.tokens {
			list := &t.tokens[i]
			for _, change := range list.fungible {
				if change.amount != 0 && change.isDebit() != credits {
					if err := x.apply(hts.TokenAdjust{Account: change.account.ID, Token: list.token.ID, Delta: change.amount}); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// sum adds up the amounts of the given changes, reporting a non-zero value
// on overflow.
func sum(changes []fungibleChange) int64 {
	total := new(big.Int)
	for _, change := range changes {
		total.Add(total, big.NewInt(change.amount))
	}
	if !total.IsInt64() {
		return -1
	}
	return total.Int64()
}

func (x *execution) recordTransfer(t *transfer) {
	for _, change := range t.hbar {
		x.record.HbarTransfers = append(x.record.HbarTransfers, hts.HbarTransfer{
			Account: change.account.ID,
			Amount:  change.amount,
		})
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		for _, change := range list.fungible {
			x.record.TokenTransfers = append(x.record.TokenTransfers, hts.TokenTransfer{
				Token:      list.token.ID,
				Account:    change.account.ID,
				Amount:     change.amount,
				IsApproval: change.approval,
			})
		}
		for _, move := range list.nfts {
			x.record.NftTransfers = append(x.record.NftTransfers, hts.NftTransfer{
				Token:      list.token.ID,
				Sender:     move.from.ID,
				Receiver:   move.to.ID,
				Serial:     move.serial,
				IsApproval: move.approval,
			})
		}
	}
}
