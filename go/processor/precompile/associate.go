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

func (x *execution) associate(op Associate) error {
	address := op.Account
	if op.OfCaller {
		address = x.ctx.Active
	}
	account, err := x.account(address, hts.InvalidAccountID)
	if err != nil {
		return err
	}
	if err := x.authorizeAccount(&account); err != nil {
		return err
	}

	tokens := make([]hts.Token, 0, len(op.Tokens))
	for _, address := range op.Tokens {
		token, err := x.token(address)
		if err != nil {
			return err
		}
		tokens = append(tokens, token)
	}
	seen := map[hts.TokenID]bool{}
	for _, token := range tokens {
		if seen[token.ID] {
			return hts.Fail(hts.TokenIDRepeatedInTokenList)
		}
		seen[token.ID] = true
		if _, found := x.view.GetRelationship(account.ID, token.ID); found {
			return hts.Fail(hts.TokenAlreadyAssociatedToAccount)
		}
	}
	if limit := x.config.MaxTokensPerAccount; limit > 0 && account.NumAssociations+len(tokens) > limit {
		return hts.Fail(hts.TokensPerAccountLimitExceeded)
	}

	for _, token := range tokens {
		if err := x.apply(hts.RelationshipCreate{Relationship: newRelationship(account.ID, &token, false)}); err != nil {
			return err
		}
	}
	return nil
}

// newRelationship creates the relationship of a freshly associated account,
// initialized from the token's freeze and KYC defaults.
func newRelationship(account hts.AccountID, token *hts.Token, automatic bool) hts.Relationship {
	return hts.Relationship{
		Account:    account,
		Token:      token.ID,
		Frozen:     token.FreezeKey != nil && token.FreezeDefault,
		KycGranted: token.KycKey == nil,
		Automatic:  automatic,
	}
}

func (x *execution) dissociate(op Dissociate) error {
	address := op.Account
	if op.OfCaller {
		address = x.ctx.Active
	}
	account, err := x.account(address, hts.InvalidAccountID)
	if err != nil {
		return err
	}

	removals := make([]hts.Effect, 0, len(op.Tokens))
	seen := map[hts.TokenID]bool{}
	for _, address := range op.Tokens {
		token, err := x.token(address)
		if err != nil {
			return err
		}
		if seen[token.ID] {
			return hts.Fail(hts.TokenIDRepeatedInTokenList)
		}
		seen[token.ID] = true
		if token.Treasury == account.ID {
			return hts.Fail(hts.AccountIsTreasury)
		}
		rel, found := x.view.GetRelationship(account.ID, token.ID)
		if !found {
			return hts.Fail(hts.TokenNotAssociatedToAccount)
		}
		if rel.Frozen {
			return hts.Fail(hts.AccountFrozenForToken)
		}
		if rel.Balance > 0 {
			if token.Type == hts.NonFungibleUnique {
				return hts.Fail(hts.AccountStillOwnsNfts)
			}
			return hts.Fail(hts.TransactionRequiresZeroTokenBalances)
		}
		removals = append(removals, hts.RelationshipRemove{Account: account.ID, Token: token.ID})
	}
	if err := x.authorizeAccount(&account); err != nil {
		return err
	}
	return x.apply(removals...)
}
