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

// read answers the read-only operations. Reads only check the existence of
// the entities involved and never produce effects.
func (x *execution) read(op Operation) error {
	if op, ok := op.(IsToken); ok {
		token, found := x.view.GetToken(hts.TokenID(op.Token.EntityNum()))
		x.values = []any{op.Token.IsMirror() && found && !token.Deleted}
		return nil
	}

	token, err := x.token(tokenOf(op))
	if err != nil {
		return err
	}
	switch op := op.(type) {
	case Name:
		x.values = []any{token.Name}
	case Symbol:
		x.values = []any{token.Symbol}
	case Decimals:
		x.values = []any{int64(token.Decimals)}
	case TotalSupply:
		x.values = []any{token.TotalSupply}
	case GetTokenType:
		x.values = []any{int64(token.Type)}

	case BalanceOf:
		account, err := x.account(op.Account, hts.InvalidAccountID)
		if err != nil {
			return err
		}
		rel, _ := x.view.GetRelationship(account.ID, token.ID)
		x.values = []any{rel.Balance}
	case IsAssociated:
		associated := false
		if x.ctx.HasActive {
			_, associated = x.view.GetRelationship(x.ctx.ActiveAccount, token.ID)
		}
		x.values = []any{associated}
	case IsFrozen:
		rel, err := x.relationship(&token, op.Account)
		if err != nil {
			return err
		}
		x.values = []any{rel.Frozen}
	case IsKyc:
		rel, err := x.relationship(&token, op.Account)
		if err != nil {
			return err
		}
		x.values = []any{rel.KycGranted}

	case OwnerOf:
		nft, err := x.nft(&token, op.Serial)
		if err != nil {
			return err
		}
		x.values = []any{x.addressOf(nft.Owner)}
	case TokenURI:
		nft, err := x.nft(&token, op.Serial)
		if err != nil {
			return err
		}
		x.values = []any{string(nft.Metadata)}
	case GetApproved:
		nft, err := x.nft(&token, op.Serial)
		if err != nil {
			return err
		}
		x.values = []any{x.addressOf(nft.Spender)}

	case Allowance:
		owner, err := x.account(op.Owner, hts.InvalidAllowanceOwnerID)
		if err != nil {
			return err
		}
		spender, err := x.account(op.Spender, hts.InvalidAllowanceSpenderID)
		if err != nil {
			return err
		}
		x.values = []any{x.view.GetAllowance(owner.ID, spender.ID, token.ID)}
	case IsApprovedForAll:
		owner, err := x.account(op.Owner, hts.InvalidAllowanceOwnerID)
		if err != nil {
			return err
		}
		operator, err := x.account(op.Operator, hts.InvalidAllowanceSpenderID)
		if err != nil {
			return err
		}
		x.values = []any{x.view.IsApprovedForAll(owner.ID, operator.ID, token.ID)}
	}
	return nil
}

func (x *execution) nft(token *hts.Token, serial int64) (hts.Nft, error) {
	if token.Type != hts.NonFungibleUnique {
		return hts.Nft{}, hts.Fail(hts.InvalidTokenID)
	}
	nft, found := x.view.GetNft(hts.NftID{Token: token.ID, Serial: serial})
	if !found {
		return hts.Nft{}, hts.Fail(hts.InvalidTokenNftSerialNumber)
	}
	return nft, nil
}

func (x *execution) relationship(token *hts.Token, address hts.Address) (hts.Relationship, error) {
	account, err := x.account(address, hts.InvalidAccountID)
	if err != nil {
		return hts.Relationship{}, err
	}
	rel, found := x.view.GetRelationship(account.ID, token.ID)
	if !found {
		return hts.Relationship{}, hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	return rel, nil
}

// tokenOf returns the token addressed by a read operation.
func tokenOf(op Operation) hts.Address {
	switch op := op.(type) {
	case Name:
		return op.Token
	case Symbol:
		return op.Token
	case Decimals:
		return op.Token
	case TotalSupply:
		return op.Token
	case BalanceOf:
		return op.Token
	case OwnerOf:
		return op.Token
	case TokenURI:
		return op.Token
	case Allowance:
		return op.Token
	case GetApproved:
		return op.Token
	case IsApprovedForAll:
		return op.Token
	case IsAssociated:
		return op.Token
	case IsFrozen:
		return op.Token
	case IsKyc:
		return op.Token
	case IsToken:
		return op.Token
	case GetTokenType:
		return op.Token
	}
	return hts.Address{}
}
