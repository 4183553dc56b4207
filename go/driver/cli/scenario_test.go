// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/contracts/relay"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/calls"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/Fantom-foundation/tokenservice/go/state"
	"github.com/ethereum/go-ethereum/common"
)

const (
	payer  hts.AccountID = 1001
	caller hts.AccountID = 1002
	holder hts.AccountID = 1003
	token  hts.TokenID   = 1010
)

func newProcessor(t *testing.T) hts.Processor {
	t.Helper()
	dispatcher, err := hts.NewDispatcher("v1")
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}
	return calls.NewProcessor(relay.NewInterpreter(), dispatcher, precompile.DefaultConfig)
}

func freezeFixture(frozen bool) *state.Fixture {
	return &state.Fixture{
		Accounts: []state.FixtureAccount{
			{ID: payer, Key: state.NewFixtureKey(hts.Ed25519Key{1}), Balance: 1000},
			{ID: caller, Key: state.NewFixtureKey(hts.ContractIDKey{Contract: caller}), IsContract: true},
			{ID: holder, Key: state.NewFixtureKey(hts.Ed25519Key{3})},
		},
		Tokens: []state.FixtureToken{
			{ID: token, Treasury: caller, TotalSupply: 10, FreezeKey: state.NewFixtureKey(hts.ContractIDKey{Contract: caller})},
		},
		Relationships: []state.FixtureRelationship{
			{Account: caller, Token: token, Balance: 10, KycGranted: true},
			{Account: holder, Token: token, Frozen: frozen, KycGranted: true},
		},
	}
}

func freezeScenario(t *testing.T) *Scenario {
	t.Helper()
	input, err := precompile.TokenServiceABI().Pack("freezeToken",
		common.Address(token.Address()), common.Address(holder.Address()))
	if err != nil {
		t.Fatalf("failed to pack input: %v", err)
	}
	return &Scenario{
		Ledger: *freezeFixture(false),
		Transactions: []Transaction{{
			Sender:    payer.Address(),
			Recipient: caller.Address(),
			Steps:     []Step{{Kind: hts.Call, Target: hts.PrecompileAddress, Input: input}},
			GasLimit:  1_000_000,
			Expect:    &Expectation{Status: hts.Success, Records: []hts.Status{hts.Success}},
		}},
		Result: freezeFixture(true),
	}
}

func TestScenario_PassingScenarioIsAccepted(t *testing.T) {
	ledger, err := freezeScenario(t).Run(newProcessor(t), nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	rel, _ := ledger.GetRelationship(holder, token)
	if !rel.Frozen {
		t.Errorf("holder was not frozen")
	}
}

func TestScenario_ViolatedExpectationsAreReported(t *testing.T) {
	tests := map[string]func(*Scenario){
		"status": func(s *Scenario) {
			s.Transactions[0].Expect.Status = hts.ContractRevertExecuted
		},
		"records": func(s *Scenario) {
			s.Transactions[0].Expect.Records = []hts.Status{hts.InvalidFullPrefixSignatureForPrecompile}
		},
		"result": func(s *Scenario) {
			s.Result = freezeFixture(false)
		},
		"reverted": func(s *Scenario) {
			s.Transactions[0].Revert = true
		},
	}
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			scenario := freezeScenario(t)
			modify(scenario)
			if _, err := scenario.Run(newProcessor(t), nil); err == nil {
				t.Errorf("expected scenario to fail")
			}
		})
	}
}

func TestScenario_CanBeStoredAndRestored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := WriteScenario(freezeScenario(t), path); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	restored, err := ReadScenario(path)
	if err != nil {
		t.Fatalf("failed to read scenario: %v", err)
	}
	if _, err := restored.Run(newProcessor(t), nil); err != nil {
		t.Errorf("restored scenario failed: %v", err)
	}
}

func TestReadScenario_ReportsMissingFiles(t *testing.T) {
	if _, err := ReadScenario(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestTransaction_InputAndStepsAreExclusive(t *testing.T) {
	description := Transaction{
		Input: []byte{1},
		Steps: []Step{{Kind: hts.Call}},
	}
	if _, err := description.ToTransaction(nil); err == nil {
		t.Errorf("expected error")
	}
}

func TestTransaction_SignaturesActivateKeys(t *testing.T) {
	key := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{7}, ed25519.SeedSize))
	other := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{8}, ed25519.SeedSize))
	input := []byte{1, 2, 3}
	body := []byte("body")

	tests := map[string]struct {
		body      []byte
		signature sigs.SignaturePair
		active    bool
	}{
		"signed input": {
			signature: sigs.SignEd25519(key, input),
			active:    true,
		},
		"signed body": {
			body:      body,
			signature: sigs.SignEd25519(key, body),
			active:    true,
		},
		"input signed instead of body": {
			body:      body,
			signature: sigs.SignEd25519(key, input),
		},
		"other key": {
			signature: sigs.SignEd25519(other, input),
		},
	}
	cache, err := sigs.NewCache(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			description := Transaction{
				Input:      input,
				Body:       test.body,
				Signatures: []Signature{NewSignature(test.signature)},
			}
			transaction, err := description.ToTransaction(cache)
			if err != nil {
				t.Fatalf("failed to convert transaction: %v", err)
			}
			if want, got := test.active, transaction.Signatures.IsActive(sigs.Ed25519KeyOf(key)); want != got {
				t.Errorf("unexpected key activation, wanted %t, got %t", want, got)
			}
		})
	}
}

func TestScenario_TopLevelSignaturesAuthorizeKeys(t *testing.T) {
	key := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{3}, ed25519.SeedSize))
	freezeKey := state.NewFixtureKey(sigs.Ed25519KeyOf(key))
	cache, err := sigs.NewCache(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	tests := map[string]struct {
		sign bool
		want hts.Status
	}{
		"signed":   {sign: true, want: hts.Success},
		"unsigned": {want: hts.InvalidSignature},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			scenario := freezeScenario(t)
			scenario.Ledger.Tokens[0].FreezeKey = freezeKey
			scenario.Result = nil
			description := &scenario.Transactions[0]
			description.Expect.Records = []hts.Status{test.want}
			if test.sign {
				transaction, err := description.ToTransaction(nil)
				if err != nil {
					t.Fatalf("failed to convert transaction: %v", err)
				}
				description.Signatures = []Signature{NewSignature(sigs.SignEd25519(key, transaction.Input))}
			}

			path := filepath.Join(t.TempDir(), "scenario.json")
			if err := WriteScenario(scenario, path); err != nil {
				t.Fatalf("failed to write scenario: %v", err)
			}
			restored, err := ReadScenario(path)
			if err != nil {
				t.Fatalf("failed to read scenario: %v", err)
			}
			ledger, err := restored.Run(newProcessor(t), cache)
			if err != nil {
				t.Fatalf("scenario failed: %v", err)
			}
			rel, _ := ledger.GetRelationship(holder, token)
			if want, got := test.want == hts.Success, rel.Frozen; want != got {
				t.Errorf("unexpected freeze state, wanted %t, got %t", want, got)
			}
		})
	}
}

func TestExpectation_NilAcceptsEverything(t *testing.T) {
	var expectation *Expectation
	if err := expectation.Check(hts.Receipt{Status: hts.ContractRevertExecuted}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIssuesCollector_RetainsCopyOfScenario(t *testing.T) {
	scenario := freezeScenario(t)
	collector := IssuesCollector{}
	collector.AddIssue(scenario, errors.New("issue"))

	scenario.Transactions[0].GasLimit = 1
	scenario.Ledger.Tokens[0].TotalSupply = 0

	retained := collector.GetIssues()[0].Input()
	if retained == scenario {
		t.Fatalf("scenario is not copied")
	}
	if want, got := hts.Gas(1_000_000), retained.Transactions[0].GasLimit; want != got {
		t.Errorf("unexpected gas limit, wanted %d, got %d", want, got)
	}
	if want, got := int64(10), retained.Ledger.Tokens[0].TotalSupply; want != got {
		t.Errorf("unexpected total supply, wanted %d, got %d", want, got)
	}
}

func TestIssuesCollector_CollectsIssues(t *testing.T) {
	collector := IssuesCollector{}
	collector.AddIssue(nil, errors.New("first"))
	collector.AddIssue(freezeScenario(t), errors.New("second"))
	if want, got := 2, collector.NumIssues(); want != got {
		t.Fatalf("unexpected number of issues, wanted %d, got %d", want, got)
	}
	issues := collector.GetIssues()
	if issues[0].Input() != nil || !strings.Contains(issues[1].Error().Error(), "second") {
		t.Errorf("unexpected issues %v", issues)
	}
}
