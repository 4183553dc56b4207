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
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/Fantom-foundation/tokenservice/go/state"
)

const (
	treasury  hts.AccountID = 1001
	alice     hts.AccountID = 1002
	bob       hts.AccountID = 1003
	contract  hts.AccountID = 1004
	collector hts.AccountID = 1005

	fungible hts.TokenID = 1010
	unique   hts.TokenID = 1011
	other    hts.TokenID = 1012
)

var (
	treasuryKey = hts.Ed25519Key{1}
	aliceKey    = hts.Ed25519Key{2}
	bobKey      = hts.Ed25519Key{3}
	contractKey = hts.ContractIDKey{Contract: contract}

	unknownAlias = hts.Address{0xab, 0xcd}
)

// newTestLedger creates a ledger with a fungible and a non-fungible token
// managed by the test contract. Alice owns serial 1, the treasury serial 2.
func newTestLedger() *state.Ledger {
	ledger := state.NewLedger()
	for _, account := range []hts.Account{
		{ID: treasury, Key: treasuryKey, Balance: 1000, NumAssociations: 2, NumNftsOwned: 1},
		{ID: alice, Key: aliceKey, Balance: 1000, NumAssociations: 2, NumNftsOwned: 1},
		{ID: bob, Key: bobKey, Balance: 1000, NumAssociations: 2},
		{ID: contract, Key: contractKey, Balance: 1000, NumAssociations: 2, IsContract: true},
		{ID: collector, Key: hts.Ed25519Key{5}, Balance: 0},
	} {
		ledger.PutAccount(account)
	}
	ledger.PutToken(hts.Token{
		ID:          fungible,
		Name:        "Fungible",
		Symbol:      "FT",
		Decimals:    2,
		TotalSupply: 1000,
		Treasury:    treasury,
		SupplyKey:   contractKey,
		FreezeKey:   contractKey,
	})
	ledger.PutToken(hts.Token{
		ID:          unique,
		Type:        hts.NonFungibleUnique,
		Name:        "Unique",
		Symbol:      "NFT",
		TotalSupply: 2,
		Treasury:    treasury,
		SupplyKey:   contractKey,
		LastSerial:  2,
	})
	ledger.PutToken(hts.Token{ID: other, Name: "Other", Treasury: treasury})
	for _, rel := range []hts.Relationship{
		{Account: treasury, Token: fungible, Balance: 800},
		{Account: alice, Token: fungible, Balance: 100},
		{Account: bob, Token: fungible},
		{Account: contract, Token: fungible, Balance: 100},
		{Account: treasury, Token: unique, Balance: 1},
		{Account: alice, Token: unique, Balance: 1},
		{Account: bob, Token: unique},
		{Account: contract, Token: unique},
	} {
		rel.KycGranted = true
		ledger.PutRelationship(rel)
	}
	ledger.PutNft(hts.Nft{ID: hts.NftID{Token: unique, Serial: 1}, Owner: alice, Metadata: []byte("ipfs://1")})
	ledger.PutNft(hts.Nft{ID: hts.NftID{Token: unique, Serial: 2}, Owner: treasury, Metadata: []byte("ipfs://2")})
	return ledger
}

// contextOf creates the call context of a contract calling the precompile
// directly.
func contextOf(id hts.AccountID) CallContext {
	return CallContext{
		Active:             id.Address(),
		ActiveAccount:      id,
		HasActive:          true,
		Origin:             alice.Address(),
		ContractIdentities: []hts.AccountID{id},
		DelegateIdentities: []hts.AccountID{id},
	}
}

// execute runs the operation on the ledger and applies its effects.
func execute(t *testing.T, config Config, ledger *state.Ledger, ctx CallContext, op Operation, signatures ...hts.Key) (Outcome, hts.Status) {
	t.Helper()
	var verifier hts.SignatureVerifier
	if len(signatures) > 0 {
		verifier = sigs.NewKeySet(signatures...)
	}
	outcome, err := NewEngine(config, verifier).Execute(op, ctx, ledger)
	status := hts.StatusOf(err)
	if status == hts.FailInvalid {
		t.Fatalf("unexpected error: %v", err)
	}
	if err == nil {
		if err := hts.ApplyEffects(ledger, outcome.Effects...); err != nil {
			t.Fatalf("failed to apply effects: %v", err)
		}
	}
	return outcome, status
}

func tokenBalance(ledger hts.LedgerView, account hts.AccountID, token hts.TokenID) int64 {
	rel, _ := ledger.GetRelationship(account, token)
	return rel.Balance
}

func hbarBalance(ledger hts.LedgerView, id hts.AccountID) int64 {
	account, _ := ledger.GetAccount(id)
	return account.Balance
}
