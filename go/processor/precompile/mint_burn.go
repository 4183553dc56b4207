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
	"math"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

func (x *execution) mint(op Mint) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.SupplyKey == nil {
		return hts.Fail(hts.TokenHasNoSupplyKey)
	}
	if err := x.authorize(token.SupplyKey); err != nil {
		return err
	}
	if token.Paused {
		return hts.Fail(hts.TokenIsPaused)
	}

	minted := op.Amount
	if token.Type == hts.NonFungibleUnique {
		if op.Amount != 0 && op.Amount != int64(len(op.Metadata)) {
			return hts.Fail(hts.InvalidTokenMintAmount)
		}
		if len(op.Metadata) == 0 {
			return hts.Fail(hts.InvalidTokenMintMetadata)
		}
		for _, metadata := range op.Metadata {
			if len(metadata) > x.config.MaxNftMetadataBytes {
				return hts.Fail(hts.MetadataTooLong)
			}
		}
		minted = int64(len(op.Metadata))
	} else {
		if len(op.Metadata) > 0 {
			return hts.Fail(hts.InvalidTokenMintMetadata)
		}
		if op.Amount <= 0 || op.Amount > math.MaxInt64-token.TotalSupply {
			return hts.Fail(hts.InvalidTokenMintAmount)
		}
	}
	if _, found := x.view.GetRelationship(token.Treasury, token.ID); !found {
		return hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	if token.SupplyType == hts.Finite && token.TotalSupply+minted > token.MaxSupply {
		return hts.Fail(hts.TokenMaxSupplyReached)
	}

	if token.Type == hts.NonFungibleUnique {
		serials := make([]int64, 0, len(op.Metadata))
		for i, metadata := range op.Metadata {
			id := hts.NftID{Token: token.ID, Serial: token.LastSerial + int64(i) + 1}
			if err := x.apply(hts.NftMint{ID: id, Owner: token.Treasury, Metadata: metadata}); err != nil {
				return err
			}
			serials = append(serials, id.Serial)
			x.record.NftTransfers = append(x.record.NftTransfers, hts.NftTransfer{
				Token: token.ID, Receiver: token.Treasury, Serial: id.Serial,
			})
		}
		x.record.SerialNumbers = serials
	} else {
		if err := x.apply(hts.TokenAdjust{Account: token.Treasury, Token: token.ID, Delta: minted}); err != nil {
			return err
		}
		x.record.TokenTransfers = append(x.record.TokenTransfers, hts.TokenTransfer{
			Token: token.ID, Account: token.Treasury, Amount: minted,
		})
	}
	if err := x.apply(hts.SupplyAdjust{Token: token.ID, Delta: minted}); err != nil {
		return err
	}
	x.record.NewTotalSupply = token.TotalSupply + minted
	serials := x.record.SerialNumbers
	if serials == nil {
		serials = []int64{}
	}
	x.values = []any{x.record.NewTotalSupply, serials}
	return nil
}

func (x *execution) burn(op Burn) error {
	token, err := x.token(op.Token)
	if err != nil {
		return err
	}
	if token.SupplyKey == nil {
		return hts.Fail(hts.TokenHasNoSupplyKey)
	}
	if err := x.authorize(token.SupplyKey); err != nil {
		return err
	}
	if token.Paused {
		return hts.Fail(hts.TokenIsPaused)
	}

	burned := op.Amount
	var effects []hts.Effect
	if token.Type == hts.NonFungibleUnique {
		if len(op.Serials) == 0 {
			return hts.Fail(hts.InvalidTokenBurnMetadata)
		}
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
			if nft.Owner != token.Treasury {
				return hts.Fail(hts.TreasuryMustOwnBurnedNft)
			}
			effects = append(effects, hts.NftBurn{ID: id})
			x.record.NftTransfers = append(x.record.NftTransfers, hts.NftTransfer{
				Token: token.ID, Sender: token.Treasury, Serial: serial,
			})
		}
		burned = int64(len(op.Serials))
		x.record.SerialNumbers = op.Serials
	} else {
		if len(op.Serials) > 0 || op.Amount <= 0 {
			return hts.Fail(hts.InvalidTokenBurnAmount)
		}
		rel, found := x.view.GetRelationship(token.Treasury, token.ID)
		if !found {
			return hts.Fail(hts.TokenNotAssociatedToAccount)
		}
		if rel.Balance < op.Amount {
			return hts.Fail(hts.InsufficientTokenBalance)
		}
		effects = append(effects, hts.TokenAdjust{Account: token.Treasury, Token: token.ID, Delta: -op.Amount})
		x.record.TokenTransfers = append(x.record.TokenTransfers, hts.TokenTransfer{
			Token: token.ID, Account: token.Treasury, Amount: -op.Amount,
		})
	}
	effects = append(effects, hts.SupplyAdjust{Token: token.ID, Delta: -burned})
	if err := x.apply(effects...); err != nil {
		return err
	}
	x.record.NewTotalSupply = token.TotalSupply - burned
	x.values = []any{x.record.NewTotalSupply}
	return nil
}
