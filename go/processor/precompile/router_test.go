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
	"errors"
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func pack(t *testing.T, contract *abi.ABI, name string, args ...any) []byte {
	t.Helper()
	data, err := contract.Pack(name, args...)
	if err != nil {
		t.Fatalf("failed to pack %s: %v", name, err)
	}
	return data
}

func redirect(t *testing.T, token hts.TokenID, name string, args ...any) []byte {
	t.Helper()
	inner := pack(t, &tokenFacadeABI, name, args...)
	return pack(t, &tokenServiceABI, "redirectForToken", common.Address(token.Address()), inner)
}

func addr(id hts.AccountID) common.Address {
	return common.Address(id.Address())
}

// sameOperation compares operations ignoring the ABI method they were
// decoded from.
func sameOperation(a, b Operation) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	for i := 0; i < va.NumField(); i++ {
		if va.Type().Field(i).Name == "call" {
			continue
		}
		if !reflect.DeepEqual(va.Field(i).Interface(), vb.Field(i).Interface()) {
			return false
		}
	}
	return true
}

func TestRoute_DecodesTokenServiceCalls(t *testing.T) {
	token := common.Address(fungible.Address())
	tests := map[string]struct {
		input []byte
		want  Operation
	}{
		"associateToken": {
			pack(t, &tokenServiceABI, "associateToken", addr(alice), token),
			Associate{Account: alice.Address(), Tokens: []hts.Address{fungible.Address()}},
		},
		"dissociateTokens": {
			pack(t, &tokenServiceABI, "dissociateTokens", addr(alice), []common.Address{token, common.Address(unique.Address())}),
			Dissociate{Account: alice.Address(), Tokens: []hts.Address{fungible.Address(), unique.Address()}},
		},
		"mintToken with uint64 amount": {
			pack(t, &tokenServiceABI, "mintToken", token, uint64(5), [][]byte{}),
			Mint{Token: fungible.Address(), Amount: 5, Metadata: [][]byte{}},
		},
		"burnToken with int64 amount": {
			pack(t, &tokenServiceABI, "burnToken0", token, int64(0), []int64{1, 2}),
			Burn{Token: fungible.Address(), Serials: []int64{1, 2}},
		},
		"transferToken": {
			pack(t, &tokenServiceABI, "transferToken", token, addr(alice), addr(bob), int64(10)),
			TransferFungible{Token: fungible.Address(), Changes: debitCredit(alice, bob, 10)},
		},
		"transferNFTs": {
			pack(t, &tokenServiceABI, "transferNFTs", token, []common.Address{addr(alice)}, []common.Address{addr(bob)}, []int64{3}),
			TransferNFT{Token: fungible.Address(), Moves: []NftExchange{{Sender: alice.Address(), Receiver: bob.Address(), Serial: 3}}},
		},
		"approve": {
			pack(t, &tokenServiceABI, "approve", token, addr(bob), big.NewInt(12)),
			Approve{Token: fungible.Address(), Spender: bob.Address(), Amount: 12},
		},
		"transferFromNFT": {
			pack(t, &tokenServiceABI, "transferFromNFT", token, addr(alice), addr(bob), big.NewInt(1)),
			TransferFromNFT{Token: fungible.Address(), From: alice.Address(), To: bob.Address(), Serial: 1},
		},
		"cryptoTransfer with approvals": {
			pack(t, &tokenServiceABI, "cryptoTransfer0",
				abiTransferList{Transfers: []abiAccountAmount{{AccountID: addr(alice), Amount: -1, IsApproval: true}, {AccountID: addr(bob), Amount: 1}}},
				[]abiTokenTransferList{{
					Token:        token,
					Transfers:    []abiAccountAmount{},
					NftTransfers: []abiNftTransfer{{SenderAccountID: addr(alice), ReceiverAccountID: addr(bob), SerialNumber: 4, IsApproval: true}},
				}},
			),
			TransferBatch{
				Hbar: []AccountAmount{{Account: alice.Address(), Amount: -1, IsApproval: true}, {Account: bob.Address(), Amount: 1}},
				Tokens: []TokenTransferList{{
					Token:   fungible.Address(),
					Changes: []AccountAmount{},
					Moves:   []NftExchange{{Sender: alice.Address(), Receiver: bob.Address(), Serial: 4, IsApproval: true}},
				}},
			},
		},
		"freezeToken": {
			pack(t, &tokenServiceABI, "freezeToken", token, addr(bob)),
			Freeze{Token: fungible.Address(), Account: bob.Address()},
		},
		"wipeTokenAccount with uint32 amount": {
			pack(t, &tokenServiceABI, "wipeTokenAccount", token, addr(alice), uint32(8)),
			WipeFungible{Token: fungible.Address(), Account: alice.Address(), Amount: 8},
		},
		"wipeTokenAccount with int64 amount": {
			pack(t, &tokenServiceABI, "wipeTokenAccount0", token, addr(alice), int64(9)),
			WipeFungible{Token: fungible.Address(), Account: alice.Address(), Amount: 9},
		},
		"wipeTokenAccountNFT": {
			pack(t, &tokenServiceABI, "wipeTokenAccountNFT", token, addr(alice), []int64{1, 2}),
			WipeNFT{Token: fungible.Address(), Account: alice.Address(), Serials: []int64{1, 2}},
		},
		"pauseToken": {
			pack(t, &tokenServiceABI, "pauseToken", token),
			Pause{Token: fungible.Address()},
		},
		"unpauseToken": {
			pack(t, &tokenServiceABI, "unpauseToken", token),
			Unpause{Token: fungible.Address()},
		},
		"deleteToken": {
			pack(t, &tokenServiceABI, "deleteToken", token),
			Delete{Token: fungible.Address()},
		},
		"isToken": {
			pack(t, &tokenServiceABI, "isToken", token),
			IsToken{Token: fungible.Address()},
		},
		"erc transfer": {
			redirect(t, fungible, "transfer", addr(bob), big.NewInt(7)),
			TransferFungible{Token: fungible.Address(), FromCaller: true, Changes: []AccountAmount{{Account: bob.Address(), Amount: 7}}},
		},
		"erc transferFrom": {
			redirect(t, unique, "transferFrom", addr(alice), addr(bob), big.NewInt(1)),
			ErcTransferFrom{Token: unique.Address(), From: alice.Address(), To: bob.Address(), Value: 1},
		},
		"erc associate": {
			redirect(t, fungible, "associate"),
			Associate{Tokens: []hts.Address{fungible.Address()}, OfCaller: true},
		},
		"erc balanceOf": {
			redirect(t, fungible, "balanceOf", addr(alice)),
			BalanceOf{Token: fungible.Address(), Account: alice.Address()},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			op, err := Route(test.input)
			if err != nil {
				t.Fatalf("failed to route input: %v", err)
			}
			if !sameOperation(test.want, op) {
				t.Errorf("unexpected operation\nwanted %+v\n   got %+v", test.want, op)
			}
		})
	}
}

func TestRoute_MarksFacadeCalls(t *testing.T) {
	op, err := Route(redirect(t, fungible, "name"))
	if err != nil {
		t.Fatalf("failed to route input: %v", err)
	}
	if !op.origin().facade {
		t.Errorf("facade call not marked")
	}
	op, err = Route(pack(t, &tokenServiceABI, "isToken", common.Address(fungible.Address())))
	if err != nil {
		t.Fatalf("failed to route input: %v", err)
	}
	if op.origin().facade {
		t.Errorf("token service call marked as facade call")
	}
}

func TestRoute_RejectsMalformedInput(t *testing.T) {
	token := common.Address(fungible.Address())
	valid := pack(t, &tokenServiceABI, "transferToken", token, addr(alice), addr(bob), int64(10))
	tooLarge := new(big.Int).Lsh(big.NewInt(1), 64)

	tests := map[string]struct {
		input []byte
		want  error
	}{
		"empty":                 {nil, ErrUnsupportedSelector},
		"short selector":        {[]byte{1, 2}, ErrUnsupportedSelector},
		"unknown selector":      {[]byte{1, 2, 3, 4}, ErrUnsupportedSelector},
		"unknown facade method": {pack(t, &tokenServiceABI, "redirectForToken", token, []byte{1, 2, 3, 4}), ErrUnsupportedSelector},
		"truncated arguments":   {valid[:len(valid)-1], ErrMalformedArguments},
		"trailing data":         {append(append([]byte{}, valid...), 0), ErrMalformedArguments},
		"dirty padding":         {dirtyAddress(valid), ErrMalformedArguments},
		"array length mismatch": {
			pack(t, &tokenServiceABI, "transferTokens", token, []common.Address{addr(alice), addr(bob)}, []int64{-1}),
			ErrMalformedArguments,
		},
		"value beyond int64": {
			pack(t, &tokenServiceABI, "approve", token, addr(bob), tooLarge),
			ErrMalformedArguments,
		},
		"negative transfer amount": {
			pack(t, &tokenServiceABI, "transferToken", token, addr(alice), addr(bob), int64(-50)),
			ErrMalformedArguments,
		},
		"minimal transfer amount": {
			pack(t, &tokenServiceABI, "transferToken", token, addr(alice), addr(bob), int64(math.MinInt64)),
			ErrMalformedArguments,
		},
		"mint amount beyond int64": {
			pack(t, &tokenServiceABI, "mintToken", token, uint64(1)<<63, [][]byte{}),
			ErrMalformedArguments,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Route(test.input); !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
		})
	}
}

// dirtyAddress sets a padding byte of the first address argument.
func dirtyAddress(input []byte) []byte {
	res := append([]byte{}, input...)
	res[4] = 1
	return res
}
