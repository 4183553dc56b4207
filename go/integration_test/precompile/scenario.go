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
	"strings"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/contracts/relay"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/calls"
	tokenservice "github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/Fantom-foundation/tokenservice/go/state"
	"github.com/ethereum/go-ethereum/common"
)

// Scenario describes a transaction running against a ledger together with
// its expected outcome. The expected ledger is derived from the initial one
// by applying the effects listed in After.
type Scenario struct {
	Before      *state.Ledger
	Transaction hts.Transaction
	Status      hts.Status
	Records     []hts.Status
	After       []hts.Effect
}

// Run executes the scenario on a copy of its initial ledger and returns the
// receipt and the resulting ledger.
func (s *Scenario) Run(t *testing.T, processor hts.Processor) (hts.Receipt, *state.Ledger) {
	t.Helper()
	ledger := s.Before.Clone()
	receipt, err := processor.Run(s.Transaction, ledger)
	if err != nil {
		t.Fatalf("failed to run transaction: %v", err)
	}

	if want, got := s.Status, receipt.Status; want != got {
		t.Errorf("unexpected transaction status, want %v, got %v", want, got)
	}
	statuses := make([]hts.Status, 0, len(receipt.ChildRecords))
	for _, record := range receipt.ChildRecords {
		statuses = append(statuses, record.Status)
	}
	if want, got := s.Records, statuses; !slices.Equal(want, got) {
		t.Errorf("unexpected child record statuses, want %v, got %v", want, got)
	}

	want := s.Before.Clone()
	if err := hts.ApplyEffects(want, s.After...); err != nil {
		t.Fatalf("invalid expected effects: %v", err)
	}
	if !want.Equal(ledger) {
		diff := strings.Join(ledger.Diff(want), "\n\t")
		t.Fatalf("unexpected ledger after the transaction: \n\t%v", diff)
	}
	return receipt, ledger
}

// getProcessors returns a processor for every registered precompile
// configuration. Contracts are run as relays.
func getProcessors(t *testing.T) map[string]hts.Processor {
	t.Helper()
	res := map[string]hts.Processor{}
	for name, config := range tokenservice.Configs {
		dispatcher, err := hts.NewDispatcher(name)
		if err != nil {
			t.Fatalf("failed to create dispatcher %s: %v", name, err)
		}
		res[name] = calls.NewProcessor(relay.NewInterpreter(), dispatcher, config)
	}
	return res
}

// ----------------------------------------------------------------------------
// World
// ----------------------------------------------------------------------------

const (
	payer        hts.AccountID = 1001
	treasury     hts.AccountID = 1002
	contract     hts.AccountID = 1003 // the contract C calling the precompile
	intermediary hts.AccountID = 1004
	outer        hts.AccountID = 1005
	alice        hts.AccountID = 1006
	bob          hts.AccountID = 1007
	collector    hts.AccountID = 1008

	tokenT hts.TokenID = 1010
	tokenU hts.TokenID = 1011
	tokenV hts.TokenID = 1012
	tokenF hts.TokenID = 1013
)

var unknownAlias = hts.Address{0xde, 0xad, 0xbe, 0xef}

// newWorld creates the ledger all scenarios start from. Token T has a supply
// of 50 and is held by the treasury, C and alice. U and V are only held by C;
// F charges a fractional fee of a tenth collected by the collector.
func newWorld() *state.Ledger {
	ledger := state.NewLedger()
	ledger.PutAccount(hts.Account{ID: payer, Key: hts.Ed25519Key{1}, Balance: 1_000_000})
	ledger.PutAccount(hts.Account{ID: treasury, Key: hts.Ed25519Key{2}})
	for _, id := range []hts.AccountID{contract, intermediary, outer} {
		ledger.PutAccount(hts.Account{ID: id, Key: hts.ContractIDKey{Contract: id}, IsContract: true})
	}
	ledger.PutAccount(hts.Account{ID: alice, Key: hts.Ed25519Key{6}})
	ledger.PutAccount(hts.Account{ID: bob, Key: hts.Ed25519Key{7}})
	ledger.PutAccount(hts.Account{ID: collector, Key: hts.Ed25519Key{8}})

	ledger.PutToken(hts.Token{
		ID:          tokenT,
		Name:        "Token T",
		Symbol:      "T",
		TotalSupply: 50,
		Treasury:    treasury,
		SupplyKey:   hts.ContractIDKey{Contract: contract},
		FreezeKey:   hts.ContractIDKey{Contract: contract},
	})
	ledger.PutToken(hts.Token{ID: tokenU, Name: "Token U", Symbol: "U", TotalSupply: 100, Treasury: treasury})
	ledger.PutToken(hts.Token{ID: tokenV, Name: "Token V", Symbol: "V", Treasury: treasury})
	ledger.PutToken(hts.Token{
		ID:          tokenF,
		Name:        "Token F",
		Symbol:      "F",
		TotalSupply: 100,
		Treasury:    treasury,
		CustomFees: []hts.CustomFee{
			hts.FractionalFee{Numerator: 1, Denominator: 10, Collector: collector},
		},
	})

	holdings := []struct {
		account hts.AccountID
		token   hts.TokenID
		balance int64
	}{
		{treasury, tokenT, 20}, {contract, tokenT, 20}, {alice, tokenT, 10}, {bob, tokenT, 0},
		{treasury, tokenU, 0}, {contract, tokenU, 100},
		{treasury, tokenV, 0}, {contract, tokenV, 0},
		{treasury, tokenF, 0}, {contract, tokenF, 100}, {collector, tokenF, 0},
	}
	for _, holding := range holdings {
		rel := hts.Relationship{Account: holding.account, Token: holding.token, Balance: holding.balance, KycGranted: true}
		if err := hts.ApplyEffects(ledger, hts.RelationshipCreate{Relationship: rel}); err != nil {
			panic(err)
		}
	}
	return ledger
}

// ----------------------------------------------------------------------------
// Inputs
// ----------------------------------------------------------------------------

type entity interface {
	Address() hts.Address
}

func address(id entity) common.Address {
	return common.Address(id.Address())
}

func serviceInput(t *testing.T, name string, args ...any) hts.Data {
	t.Helper()
	data, err := tokenservice.TokenServiceABI().Pack(name, args...)
	if err != nil {
		t.Fatalf("failed to pack %s: %v", name, err)
	}
	return data
}

func facadeInput(t *testing.T, name string, args ...any) hts.Data {
	t.Helper()
	data, err := tokenservice.TokenFacadeABI().Pack(name, args...)
	if err != nil {
		t.Fatalf("failed to pack %s: %v", name, err)
	}
	return data
}

// callService creates a relay step calling the precompile.
func callService(t *testing.T, name string, args ...any) relay.Step {
	t.Helper()
	return relay.Call(hts.PrecompileAddress, serviceInput(t, name, args...))
}

// script encodes relay steps into call data.
func script(steps ...relay.Step) hts.Data {
	return relay.MustEncode(steps...)
}

// invoke creates a transaction of the payer calling the given relay.
func invoke(relayContract hts.AccountID, steps ...relay.Step) hts.Transaction {
	return hts.Transaction{
		Sender:    payer.Address(),
		Recipient: relayContract.Address(),
		Input:     script(steps...),
		GasLimit:  10_000_000,
	}
}

func unpack(t *testing.T, name string, output hts.Data) []any {
	t.Helper()
	values, err := tokenservice.TokenServiceABI().Unpack(name, output)
	if err != nil {
		t.Fatalf("failed to unpack output of %s: %v", name, err)
	}
	return values
}
