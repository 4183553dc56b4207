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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Fantom-foundation/tokenservice/go/contracts/relay"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/Fantom-foundation/tokenservice/go/state"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Scenario is a replayable sequence of transactions on an initial ledger.
// Scenarios are stored as JSON files; the fuzzer exports failing runs in
// this format.
type Scenario struct {
	Ledger       state.Fixture  `json:"ledger"`
	Transactions []Transaction  `json:"transactions"`
	Result       *state.Fixture `json:"result,omitempty"`
}

// Transaction describes a top-level contract call. If Steps are present, the
// input is the relay script formed by them and Input must be empty. The
// signatures are verified against Body, or against the call input if no body
// is given.
type Transaction struct {
	Sender     hts.Address   `json:"sender"`
	Recipient  hts.Address   `json:"recipient"`
	Input      hexutil.Bytes `json:"input,omitempty"`
	Steps      []Step        `json:"steps,omitempty"`
	Revert     bool          `json:"revert,omitempty"`
	Value      int64         `json:"value,omitempty"`
	GasLimit   hts.Gas       `json:"gasLimit"`
	Body       hexutil.Bytes `json:"body,omitempty"`
	Signatures []Signature   `json:"signatures,omitempty"`
	Expect     *Expectation  `json:"expect,omitempty"`
}

// Signature is a signature pair attached to a transaction.
type Signature struct {
	Scheme       sigs.Scheme   `json:"scheme"`
	PubKeyPrefix hexutil.Bytes `json:"pubKeyPrefix"`
	Signature    hexutil.Bytes `json:"signature"`
}

// NewSignature converts a signature pair into its JSON representation.
func NewSignature(pair sigs.SignaturePair) Signature {
	return Signature{
		Scheme:       pair.Scheme,
		PubKeyPrefix: pair.PubKeyPrefix,
		Signature:    pair.Signature,
	}
}

// Step is a single call of a relay script.
type Step struct {
	Kind     hts.CallKind  `json:"kind"`
	Target   hts.Address   `json:"target"`
	Value    int64         `json:"value,omitempty"`
	Input    hexutil.Bytes `json:"input,omitempty"`
	Optional bool          `json:"optional,omitempty"`
}

// Expectation lists the checked parts of a receipt.
type Expectation struct {
	Status  hts.Status   `json:"status"`
	Records []hts.Status `json:"records,omitempty"`
}

// ReadScenario loads a scenario from a JSON file.
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// WriteScenario stores a scenario as an indented JSON file.
func WriteScenario(scenario *Scenario, path string) error {
	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone creates an independent copy of the scenario.
func (s *Scenario) Clone() (*Scenario, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var clone Scenario
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// ToTransaction converts the description into a processor transaction. The
// signatures are checked by a verifier using the given cache, which may be
// shared by concurrent replays.
func (t *Transaction) ToTransaction(cache *sigs.Cache) (hts.Transaction, error) {
	input := hts.Data(t.Input)
	if len(t.Steps) > 0 {
		if len(t.Input) > 0 {
			return hts.Transaction{}, fmt.Errorf("transaction with both input and relay steps")
		}
		script := relay.Script{Revert: t.Revert}
		for _, step := range t.Steps {
			script.Steps = append(script.Steps, relay.Step{
				Kind:        step.Kind,
				Target:      step.Target,
				Value:       step.Value,
				Input:       hts.Data(step.Input),
				MustSucceed: !step.Optional,
			})
		}
		var err error
		if input, err = relay.Encode(script); err != nil {
			return hts.Transaction{}, err
		}
	}

	body := []byte(input)
	if len(t.Body) > 0 {
		body = t.Body
	}
	pairs := make([]sigs.SignaturePair, 0, len(t.Signatures))
	for _, signature := range t.Signatures {
		pairs = append(pairs, sigs.SignaturePair{
			Scheme:       signature.Scheme,
			PubKeyPrefix: signature.PubKeyPrefix,
			Signature:    signature.Signature,
		})
	}

	return hts.Transaction{
		Sender:     t.Sender,
		Recipient:  t.Recipient,
		Input:      input,
		Value:      t.Value,
		GasLimit:   t.GasLimit,
		Signatures: sigs.NewVerifier(body, pairs, cache),
	}, nil
}

// Run replays the scenario on the given processor and checks all stated
// expectations. The resulting ledger is returned even if a check fails.
func (s *Scenario) Run(processor hts.Processor, cache *sigs.Cache) (*state.Ledger, error) {
	ledger, err := s.Ledger.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid initial ledger: %w", err)
	}
	var issues []error
	for i := range s.Transactions {
		description := &s.Transactions[i]
		transaction, err := description.ToTransaction(cache)
		if err != nil {
			return ledger, fmt.Errorf("transaction %d: %w", i, err)
		}
		receipt, err := processor.Run(transaction, ledger)
		if err != nil {
			return ledger, fmt.Errorf("transaction %d failed: %w", i, err)
		}
		if err := description.Expect.Check(receipt); err != nil {
			issues = append(issues, fmt.Errorf("transaction %d: %w", i, err))
		}
	}
	if s.Result != nil {
		want, err := s.Result.Build()
		if err != nil {
			return ledger, fmt.Errorf("invalid result ledger: %w", err)
		}
		if !want.Equal(ledger) {
			diff := strings.Join(ledger.Diff(want), "\n\t")
			issues = append(issues, fmt.Errorf("unexpected result ledger:\n\t%s", diff))
		}
	}
	return ledger, errors.Join(issues...)
}

// Check compares a receipt with the expectation. A nil expectation accepts
// every receipt.
func (e *Expectation) Check(receipt hts.Receipt) error {
	if e == nil {
		return nil
	}
	if e.Status != receipt.Status {
		return fmt.Errorf("unexpected status, wanted %v, got %v", e.Status, receipt.Status)
	}
	if e.Records == nil {
		return nil
	}
	got := make([]hts.Status, 0, len(receipt.ChildRecords))
	for _, record := range receipt.ChildRecords {
		got = append(got, record.Status)
	}
	if !slices.Equal(e.Records, got) {
		return fmt.Errorf("unexpected child records, wanted %v, got %v", e.Records, got)
	}
	return nil
}
