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

// HollowAccount returns the account created for an alias first receiving
// value. It has no key and a single auto-association slot.
func (c *Config) HollowAccount(id hts.AccountID, alias hts.Address) hts.Account {
	return hts.Account{
		ID:                  id,
		Alias:               &alias,
		MaxAutoAssociations: c.HollowMaxAutoAssociations,
		Memo:                c.LazyCreatedMemo,
		AutoRenewSeconds:    c.HollowAutoRenewSeconds,
	}
}

// CreateHollowAccount resolves the alias receiving a plain value transfer,
// creating and recording a hollow account if there is none yet.
func CreateHollowAccount(keeper hts.RecordKeeper, config Config, alias hts.Address) (hts.AccountID, error) {
	view := keeper.View()
	if id, found := view.ResolveAlias(alias); found {
		return id, nil
	}
	if !config.LazyCreationEnabled {
		return 0, hts.Fail(hts.NotSupported)
	}
	account := config.HollowAccount(hts.AccountID(view.NextEntityNum()), alias)
	record := hts.ChildRecord{
		Kind:                hts.OpLazyCreate,
		Status:              hts.Success,
		AutoCreatedAccounts: []hts.AccountID{account.ID},
	}
	if err := keeper.Record(record, []hts.Effect{hts.AccountCreate{Account: account}}); err != nil {
		return 0, err
	}
	return account.ID, nil
}

// receiver resolves the account credited by a transfer. Mirror addresses
// must denote existing accounts; unknown aliases get a hollow account.
func (x *execution) receiver(address hts.Address) (hts.Account, error) {
	if address.IsMirror() {
		num := address.EntityNum()
		account, found := x.view.GetAccount(hts.AccountID(num))
		switch {
		case found && account.Deleted:
			return hts.Account{}, hts.Fail(hts.AccountDeleted)
		case found:
			return account, nil
		case num < x.config.SystemAccountBoundary:
			return hts.Account{}, hts.Fail(hts.InvalidReceivingNodeAccount)
		}
		return hts.Account{}, hts.Fail(hts.InvalidAliasKey)
	}
	if id, found := x.view.ResolveAlias(address); found {
		return x.account(id.Address(), hts.InvalidAliasKey)
	}
	if !x.config.LazyCreationEnabled {
		return hts.Account{}, hts.Fail(hts.NotSupported)
	}
	account := x.config.HollowAccount(hts.AccountID(x.view.NextEntityNum()), address)
	if err := x.apply(hts.AccountCreate{Account: account}); err != nil {
		return hts.Account{}, err
	}
	x.record.AutoCreatedAccounts = append(x.record.AutoCreatedAccounts, account.ID)
	return account, nil
}

// createdHere reports whether the account was lazily created by the current
// operation.
func (x *execution) createdHere(id hts.AccountID) bool {
	return slices.Contains(x.record.AutoCreatedAccounts, id)
}
