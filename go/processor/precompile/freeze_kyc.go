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

func (x *execution) setFrozen(tokenAddress, accountAddress hts.Address, frozen bool) error {
	token, err := x.token(tokenAddress)
	if err != nil {
		return err
	}
	if token.FreezeKey == nil {
		return hts.Fail(hts.TokenHasNoFreezeKey)
	}
	account, err := x.managedRelationship(&token, accountAddress)
	if err != nil {
		return err
	}
	if err := x.authorize(token.FreezeKey); err != nil {
		return err
	}
	return x.apply(hts.FreezeSet{Account: account, Token: token.ID, Frozen: frozen})
}

func (x *execution) setKyc(tokenAddress, accountAddress hts.Address, granted bool) error {
	token, err := x.token(tokenAddress)
	if err != nil {
		return err
	}
	if token.KycKey == nil {
		return hts.Fail(hts.TokenHasNoKycKey)
	}
	account, err := x.managedRelationship(&token, accountAddress)
	if err != nil {
		return err
	}
	if err := x.authorize(token.KycKey); err != nil {
		return err
	}
	return x.apply(hts.KycSet{Account: account, Token: token.ID, Granted: granted})
}

// managedRelationship resolves the account whose relationship with the
// token is updated by a freeze or KYC operation.
func (x *execution) managedRelationship(token *hts.Token, address hts.Address) (hts.AccountID, error) {
	account, err := x.account(address, hts.InvalidAccountID)
	if err != nil {
		return 0, err
	}
	if _, found := x.view.GetRelationship(account.ID, token.ID); !found {
		return 0, hts.Fail(hts.TokenNotAssociatedToAccount)
	}
	return account.ID, nil
}
