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

// approve grants a fungible allowance of the calling contract to a spender,
// replacing any previous allowance.
func (x *execution) approve(tokenAddress, spenderAddress hts.Address, amount int64) error {
	token, err := x.token(tokenAddress)
	if err != nil {
		return err
	}
	if token.Type != hts.FungibleCommon {
		return hts.Fail(hts.NotSupported)
	}
	owner, spender, err := x.approvalParties(&token, spenderAddress)
	if err != nil {
		return err
	}
	if amount < 0 {
		return hts.Fail(hts.NegativeAllowanceAmount)
	}
	if err := x.authorizeAccount(&owner); err != nil {
		return err
	}
	err = x.apply(hts.AllowanceSet{Owner: owner.ID, Spender: spender, Token: token.ID, Amount: amount})
	if err != nil {
		return err
	}
	x.values = []any{true}
	x.emit(approvalLog(tokenAddress, x.ctx.Active, spenderAddress, amount, false))
	return nil
}

// approvalParties resolves the owner granting an approval, which is the
// calling contract, and the spender receiving it. A zero spender address
// denotes no spender and is only accepted for serial approvals.
func (x *execution) approvalParties(token *hts.Token, spenderAddress hts.Address) (hts.Account, hts.AccountID, error) {
	owner, err := x.caller(hts.InvalidAllowanceOwnerID)
	if err != nil {
		return hts.Account{}, 0, err
	}
	var spender hts.AccountID
	if spenderAddress != (hts.Address{}) || token.Type == hts.FungibleCommon {
		account, err := x.account(spenderAddress, hts.InvalidAllowanceSpenderID)
		if err != nil {
			return hts.Account{}, 0, err
		}
		spender = account.ID
	}
	if spender == owner.ID {
		return hts.Account{}, 0, hts.Fail(hts.SpenderAccountSameAsOwner)
	}
	if _, found := x.view.GetRelationship(owner.ID, token.ID); !found {
		return hts.Account{}, 0, hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	return owner, spender, nil
}

// approveNFT grants or revokes the approval to move a single serial. Owners
// and operators approved for all of the owner's serials may do so.
func (x *execution) approveNFT(tokenAddress, spenderAddress hts.Address, serial int64) error {
	token, err := x.token(tokenAddress)
	if err != nil {
		return err
	}
	if token.Type != hts.NonFungibleUnique {
		return hts.Fail(hts.NotSupported)
	}
	owner, spender, err := x.approvalParties(&token, spenderAddress)
	if err != nil {
		return err
	}
	id := hts.NftID{Token: token.ID, Serial: serial}
	nft, found := x.view.GetNft(id)
	if !found {
		return hts.Fail(hts.InvalidTokenNftSerialNumber)
	}
	if nft.Owner != owner.ID && !x.view.IsApprovedForAll(nft.Owner, owner.ID, token.ID) {
		return hts.Fail(hts.SenderDoesNotOwnNftSerialNo)
	}
	if err := x.authorizeAccount(&owner); err != nil {
		return err
	}
	if err := x.apply(hts.NftApprovalSet{ID: id, Spender: spender}); err != nil {
		return err
	}
	x.emit(approvalLog(tokenAddress, x.addressOf(nft.Owner), spenderAddress, serial, true))
	return nil
}

// ercApprove interprets the ERC approve according to the type of the
// addressed token.
func (x *execution) ercApprove(op ErcApprove) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.Type == hts.NonFungibleUnique {
		x.record.Kind = hts.OpApproveNFT
		x.void = true
		return x.approveNFT(op.Token, op.Spender, op.Value)
	}
	return x.approve(op.Token, op.Spender, op.Value)
}

// approveForAll grants or revokes an operator's approval to move all
// serials of the calling contract.
func (x *execution) approveForAll(op ApproveForAll) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.Type != hts.NonFungibleUnique {
		return hts.Fail(hts.NotSupported)
	}
	owner, err := x.caller(hts.InvalidAllowanceOwnerID)
	if err != nil {
		return err
	}
	operator, err := x.account(op.Operator, hts.InvalidAllowanceSpenderID)
	if err != nil {
		return err
	}
	if operator.ID == owner.ID {
		return hts.Fail(hts.SpenderAccountSameAsOwner)
	}
	if _, found := x.view.GetRelationship(owner.ID, token.ID); !found {
		return hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	if err := x.authorizeAccount(&owner); err != nil {
		return err
	}
	err = x.apply(hts.OperatorApprovalSet{
		Owner:    owner.ID,
		Operator: operator.ID,
		Token:    token.ID,
		Approved: op.Approved,
	})
	if err != nil {
		return err
	}
	x.emit(approvalForAllLog(op.Token, x.ctx.Active, op.Operator, op.Approved))
	return nil
}
