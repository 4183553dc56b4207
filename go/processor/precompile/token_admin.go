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

func (x *execution) wipeFungible(op WipeFungible) error {
	token, account, err := x.wipeTarget(op.Token, op.Account)
	if err != nil {
		return err
	}
	if token.Type != hts.FungibleCommon || op.Amount <= 0 {
		return hts.Fail(hts.InvalidWipingAmount)
	}
	rel, _ := x.view.GetRelationship(account, token.ID)
	if rel.Balance < op.Amount {
		return hts.Fail(hts.InvalidWipingAmount)
	}
	err = x.apply(
		hts.TokenAdjust{Account: account, Token: token.ID, Delta: -op.Amount},
		hts.SupplyAdjust{Token: token.ID, Delta: -op.Amount},
	)
	if err != nil {
		return err
	}
	x.record.TokenTransfers = append(x.record.TokenTransfers, hts.TokenTransfer{
		Token: token.ID, Account: account, Amount: -op.Amount,
	})
	x.record.NewTotalSupply = token.TotalSupply - op.Amount
	return nil
}

func (x *execution) wipeNFT(op WipeNFT) error {
	token, account, err := x.wipeTarget(op.Token, op.Account)
	if err != nil {
		return err
	}
	if token.Type != hts.NonFungibleUnique || len(op.Serials) == 0 {
		return hts.Fail(hts.InvalidWipingAmount)
	}
	effects := make([]hts.Effect, 0, len(op.Serials)+1)
	seen := map[int64]bool{}
	for _, serial := range op.Serials {
		if serial <= 0 || seen[serial] {
			return hts.Fail(hts.InvalidNftID)
		}
		seen[serial] = true
		id := hts.NftID{Token: token.ID, Serial: serial}
		nft, found := x.view.GetNft(id)
		if !found {
			return hts.Fail(hts.InvalidNftID)
		}
		if nft.Owner != account {
			return hts.Fail(hts.AccountDoesNotOwnWipedNft)
		}
		effects = append(effects, hts.NftBurn{ID: id})
		x.record.NftTransfers = append(x.record.NftTransfers, hts.NftTransfer{
			Token: token.ID, Sender: account, Serial: serial,
		})
	}
	wiped := int64(len(op.Serials))
	effects = append(effects, hts.SupplyAdjust{Token: token.ID, Delta: -wiped})
	if err := x.apply(effects...); err != nil {
		return err
	}
	x.record.SerialNumbers = op.Serials
	x.record.NewTotalSupply = token.TotalSupply - wiped
	return nil
}

// wipeTarget resolves the token and the account of a wipe. The wipe key
// must sign and the account may not be the treasury.
func (x *execution) wipeTarget(tokenAddress, accountAddress hts.Address) (hts.Token, hts.AccountID, error) {
	token, err := x.token(tokenAddress)
	if err != nil {
		return hts.Token{}, 0, err
	}
	if token.WipeKey == nil {
		return hts.Token{}, 0, hts.Fail(hts.TokenHasNoWipeKey)
	}
	if err := x.authorize(token.WipeKey); err != nil {
		return hts.Token{}, 0, err
	}
	if token.Paused {
		return hts.Token{}, 0, hts.Fail(hts.TokenIsPaused)
	}
	account, err := x.managedRelationship(&token, accountAddress)
	if err != nil {
		return hts.Token{}, 0, err
	}
	if account == token.Treasury {
		return hts.Token{}, 0, hts.Fail(hts.CannotWipeTokenTreasuryAccount)
	}
	return token, account, nil
}

func (x *execution) setPaused(tokenAddress hts.Address, paused bool) error {
	token, err := x.token(tokenAddress)
	if err != nil {
		return err
	}
	if token.PauseKey == nil {
		return hts.Fail(hts.TokenHasNoPauseKey)
	}
	if err := x.authorize(token.PauseKey); err != nil {
		return err
	}
	return x.apply(hts.PauseSet{Token: token.ID, Paused: paused})
}

// delete marks the token as deleted. Only tokens with an admin key can be
// deleted.
func (x *execution) delete(op Delete) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.AdminKey == nil {
		return hts.Fail(hts.TokenIsImmutable)
	}
	if err := x.authorize(token.AdminKey); err != nil {
		return err
	}
	if token.Paused {
		return hts.Fail(hts.TokenIsPaused)
	}
	return x.apply(hts.TokenDelete{Token: token.ID})
}
