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

import (
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

func TestLedger_PutAccountRegistersAliasAndAdvancesNumbering(t *testing.T) {
	ledger := NewLedger()
	alias := hts.Address{0xaa}
	ledger.PutAccount(hts.Account{ID: 2000, Alias: &alias})

	if id, found := ledger.ResolveAlias(alias); !found || id != 2000 {
		t.Errorf("alias not resolved, got %v, %t", id, found)
	}
	if want, got := uint64(2001), ledger.NextEntityNum(); want != got {
		t.Errorf("unexpected next entity number, wanted %d, got %d", want, got)
	}
	ledger.PutAccount(hts.Account{ID: 1500})
	if want, got := uint64(2001), ledger.NextEntityNum(); want != got {
		t.Errorf("lower IDs must not move the numbering back, wanted %d, got %d", want, got)
	}
}

func TestLedger_ZeroAllowancesAreRemoved(t *testing.T) {
	ledger := NewLedger()
	ledger.SetAllowance(1, 2, 3, 10)
	if want, got := int64(10), ledger.GetAllowance(1, 2, 3); want != got {
		t.Errorf("unexpected allowance, wanted %d, got %d", want, got)
	}
	ledger.SetAllowance(1, 2, 3, 0)
	if len(ledger.Allowances()) != 0 {
		t.Errorf("zero allowance should not be listed: %v", ledger.Allowances())
	}
}

func TestLedger_ApprovalForAllCanBeRevoked(t *testing.T) {
	ledger := NewLedger()
	ledger.SetApprovalForAll(1, 2, 3, true)
	if !ledger.IsApprovedForAll(1, 2, 3) {
		t.Errorf("operator should be approved")
	}
	ledger.SetApprovalForAll(1, 2, 3, false)
	if ledger.IsApprovedForAll(1, 2, 3) || len(ledger.Operators()) != 0 {
		t.Errorf("operator should be revoked")
	}
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	ledger := NewLedger()
	alias := hts.Address{1}
	ledger.PutAccount(hts.Account{ID: 1001, Alias: &alias, Balance: 5})
	ledger.PutNft(hts.Nft{ID: hts.NftID{Token: 7, Serial: 1}, Owner: 1001, Metadata: []byte{1, 2}})

	clone := ledger.Clone()
	if !ledger.Equal(clone) {
		t.Fatalf("clone differs: %v", ledger.Diff(clone))
	}

	clone.PutAccount(hts.Account{ID: 1001, Alias: &alias, Balance: 6})
	clone.DeleteNft(hts.NftID{Token: 7, Serial: 1})
	if account, _ := ledger.GetAccount(1001); account.Balance != 5 {
		t.Errorf("modification of clone leaked into original")
	}
	if _, found := ledger.GetNft(hts.NftID{Token: 7, Serial: 1}); !found {
		t.Errorf("deletion in clone leaked into original")
	}
	if want, got := 2, len(ledger.Diff(clone)); want != got {
		t.Errorf("unexpected number of differences, wanted %d, got %d: %v", want, got, ledger.Diff(clone))
	}
}

func TestLedger_ListingsAreSorted(t *testing.T) {
	ledger := NewLedger()
	for _, id := range []hts.AccountID{1005, 1001, 1003} {
		ledger.PutAccount(hts.Account{ID: id})
	}
	accounts := ledger.Accounts()
	for i := 1; i < len(accounts); i++ {
		if accounts[i-1].ID >= accounts[i].ID {
			t.Fatalf("accounts not sorted: %v", accounts)
		}
	}
}
