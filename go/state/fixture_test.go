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
	"strings"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

const testFixture = `{
	"accounts": [
		{"id": 1001, "balance": 1000, "key": {"threshold": 1, "keys": [{"contract": 1005}, {"ed25519": "0x0101010101010101010101010101010101010101010101010101010101010101"}]}},
		{"id": 1002, "alias": "0x00000000000000000000000000000000000000aa", "maxAutoAssociations": 1}
	],
	"tokens": [
		{"id": 1003, "treasury": 1001, "totalSupply": 100, "supplyKey": {"contract": 1005},
		 "customFees": [{"fixed": {"amount": 5, "collector": 1001}}, {"fractional": {"Numerator": 1, "Denominator": 10, "Collector": 1001}}]},
		{"id": 1004, "nonFungible": true, "treasury": 1001, "totalSupply": 1, "lastSerial": 1}
	],
	"relationships": [
		{"account": 1001, "token": 1003, "balance": 100, "kycGranted": true},
		{"account": 1001, "token": 1004, "balance": 1}
	],
	"nfts": [
		{"token": 1004, "serial": 1, "owner": 1001, "metadata": "0x0102"}
	],
	"allowances": [
		{"owner": 1001, "spender": 1002, "token": 1003, "amount": 7}
	],
	"operators": [
		{"owner": 1001, "operator": 1002, "token": 1004}
	]
}`

func TestReadFixture_BuildsLedger(t *testing.T) {
	ledger, err := ReadFixture(strings.NewReader(testFixture))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	treasury, found := ledger.GetAccount(1001)
	if !found {
		t.Fatalf("treasury account missing")
	}
	if want, got := 2, treasury.NumAssociations; want != got {
		t.Errorf("unexpected association count, wanted %d, got %d", want, got)
	}
	if want, got := int64(1), treasury.NumNftsOwned; want != got {
		t.Errorf("unexpected NFT count, wanted %d, got %d", want, got)
	}
	key, ok := treasury.Key.(hts.ThresholdKey)
	if !ok || key.Threshold != 1 || len(key.Keys) != 2 {
		t.Errorf("unexpected key %v", treasury.Key)
	}

	if id, found := ledger.ResolveAlias(hts.Address{19: 0xaa}); !found || id != 1002 {
		t.Errorf("alias not registered, got %v, %t", id, found)
	}

	token, _ := ledger.GetToken(1003)
	if want, got := 2, len(token.CustomFees); want != got {
		t.Fatalf("unexpected number of custom fees, wanted %d, got %d", want, got)
	}
	if _, ok := token.CustomFees[1].(hts.FractionalFee); !ok {
		t.Errorf("expected fractional fee, got %T", token.CustomFees[1])
	}
	nftToken, _ := ledger.GetToken(1004)
	if nftToken.Type != hts.NonFungibleUnique {
		t.Errorf("expected non-fungible token, got %v", nftToken.Type)
	}

	if want, got := int64(7), ledger.GetAllowance(1001, 1002, 1003); want != got {
		t.Errorf("unexpected allowance, wanted %d, got %d", want, got)
	}
	if !ledger.IsApprovedForAll(1001, 1002, 1004) {
		t.Errorf("operator not registered")
	}
}

func TestReadFixture_RejectsInvalidInput(t *testing.T) {
	tests := map[string]string{
		"unknown field":     `{"accountz": []}`,
		"unknown account":   `{"tokens": [{"id": 5, "treasury": 1}], "relationships": [{"account": 1, "token": 5}]}`,
		"unknown token":     `{"accounts": [{"id": 1}], "relationships": [{"account": 1, "token": 5}]}`,
		"orphan nft":        `{"nfts": [{"token": 1, "serial": 1, "owner": 9}]}`,
		"short ed25519 key": `{"accounts": [{"id": 1, "key": {"ed25519": "0x01"}}]}`,
		"empty key":         `{"accounts": [{"id": 1, "key": {}}]}`,
		"empty custom fee":  `{"tokens": [{"id": 1, "treasury": 1, "customFees": [{}]}]}`,
		"malformed json":    `{"accounts": [`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadFixture(strings.NewReader(input)); err == nil {
				t.Errorf("expected error for %s", input)
			}
		})
	}
}

func TestNewFixtureKey_RoundTrip(t *testing.T) {
	keys := map[string]hts.Key{
		"ed25519":     hts.Ed25519Key{1, 2, 3},
		"secp256k1":   hts.Secp256k1Key{2, 1},
		"contract":    hts.ContractIDKey{Contract: 1001},
		"delegatable": hts.DelegatableContractIDKey{Contract: 1002},
		"threshold": hts.ThresholdKey{Threshold: 2, Keys: []hts.Key{
			hts.ContractIDKey{Contract: 1},
			hts.KeyList{Keys: []hts.Key{hts.Ed25519Key{9}}},
		}},
		"empty list": hts.KeyList{Keys: []hts.Key{}},
	}
	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			restored, err := NewFixtureKey(key).toKey()
			if err != nil {
				t.Fatalf("failed to convert key: %v", err)
			}
			if !hts.KeysEqual(key, restored) {
				t.Errorf("key changed, wanted %v, got %v", key, restored)
			}
		})
	}
}
