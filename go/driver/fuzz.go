// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	cliUtils "github.com/Fantom-foundation/tokenservice/go/driver/cli"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/Fantom-foundation/tokenservice/go/state"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"pgregory.net/rand"
)

var FuzzCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doFuzz,
	Name:   "fuzz",
	Usage:  "Runs randomized allowance and transfer sequences checking balance and allowance conservation",
	Flags: []cli.Flag{
		cliUtils.ConfigFlag,
		cliUtils.JobsFlag,
		cliUtils.SeedFlag,
		cliUtils.MaxErrorsFlag,
		cliUtils.SignatureCacheFlag,
		roundsFlag,
		stepsFlag,
	},
})

var roundsFlag = &cli.IntFlag{
	Name:  "rounds",
	Usage: "number of randomized sequences per configuration",
	Value: 1000,
}

var stepsFlag = &cli.IntFlag{
	Name:  "steps",
	Usage: "number of transactions per sequence",
	Value: 16,
}

func doFuzz(context *cli.Context) error {
	configs, err := cliUtils.ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	cache, err := cliUtils.SignatureCacheFlag.Fetch(context)
	if err != nil {
		return err
	}
	jobCount := cliUtils.JobsFlag.Fetch(context)
	seed := cliUtils.SeedFlag.Fetch(context)
	maxErrors := cliUtils.MaxErrorsFlag.Fetch(context)
	rounds := context.Int(roundsFlag.Name)
	steps := context.Int(stepsFlag.Name)

	issuesCollector := cliUtils.IssuesCollector{}
	printIssueCounts := func(relativeTime time.Duration, rate float64, current int64) {
		fmt.Printf(
			"[t=%4d:%02d] - Processing ~%s sequences per second, total %d, found issues %d\n",
			int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), current, issuesCollector.NumIssues(),
		)
	}

	opFuzz := func(index int) consumerResult {
		if issuesCollector.NumIssues() >= maxErrors {
			return consumeAbort
		}
		config := configs[index%len(configs)]
		round := uint64(index / len(configs))
		processor, err := newProcessor(config)
		if err != nil {
			issuesCollector.AddIssue(nil, err)
			return consumeAbort
		}
		scenario, err := fuzzSequence(processor, cache, rand.New(seed, round), steps)
		if err != nil {
			issuesCollector.AddIssue(scenario, fmt.Errorf("round %d [%s]: %w", round, config, err))
		}
		return consumeContinue
	}

	fmt.Printf("Starting fuzzing with seed %d on configurations %v ...\n", seed, configs)
	forEachCase(rounds*len(configs), opFuzz, printIssueCounts, jobCount)

	issues := issuesCollector.GetIssues()
	if len(issues) == 0 {
		fmt.Printf("No conservation violations found!\n")
		return nil
	}
	if err := issuesCollector.ExportIssues(); err != nil {
		return err
	}
	return fmt.Errorf("found %d conservation violations", len(issues))
}

// ----------------------------------------------------------------------------
// World
// ----------------------------------------------------------------------------

const (
	fuzzPayer     hts.AccountID = 1001
	fuzzOwner     hts.AccountID = 1002 // contract holding the token
	fuzzSpender   hts.AccountID = 1003 // contract spending the owner's allowance
	firstReceiver hts.AccountID = 1004

	fuzzToken hts.TokenID = 1010

	fuzzGasLimit = 1_000_000
)

type fuzzWorld struct {
	fixture   state.Fixture
	supply    int64
	receivers []hts.AccountID
}

// newFuzzWorld creates a ledger in which the owner holds the whole supply of
// the token and has granted a random allowance to the spender. Some of the
// receivers are frozen for the token.
func newFuzzWorld(random *rand.Rand) fuzzWorld {
	supply := int64(random.Intn(1000)) + 1
	world := fuzzWorld{supply: supply}
	fixture := &world.fixture

	fixture.Accounts = append(fixture.Accounts, state.FixtureAccount{
		ID:      fuzzPayer,
		Key:     state.NewFixtureKey(hts.Ed25519Key{1}),
		Balance: 1_000_000_000,
	})
	for _, id := range []hts.AccountID{fuzzOwner, fuzzSpender} {
		fixture.Accounts = append(fixture.Accounts, state.FixtureAccount{
			ID:         id,
			Key:        state.NewFixtureKey(hts.ContractIDKey{Contract: id}),
			IsContract: true,
		})
	}
	fixture.Tokens = append(fixture.Tokens, state.FixtureToken{
		ID:          fuzzToken,
		Name:        "Fuzz",
		Symbol:      "FZZ",
		TotalSupply: supply,
		Treasury:    fuzzOwner,
	})
	fixture.Relationships = append(fixture.Relationships,
		state.FixtureRelationship{Account: fuzzOwner, Token: fuzzToken, Balance: supply, KycGranted: true},
		state.FixtureRelationship{Account: fuzzSpender, Token: fuzzToken, KycGranted: true},
	)

	numReceivers := random.Intn(3) + 1
	for i := 0; i < numReceivers; i++ {
		id := firstReceiver + hts.AccountID(i)
		world.receivers = append(world.receivers, id)
		fixture.Accounts = append(fixture.Accounts, state.FixtureAccount{
			ID:  id,
			Key: state.NewFixtureKey(hts.Ed25519Key{byte(id)}),
		})
		fixture.Relationships = append(fixture.Relationships, state.FixtureRelationship{
			Account:    id,
			Token:      fuzzToken,
			Frozen:     random.Intn(4) == 0,
			KycGranted: true,
		})
	}

	if allowance := random.Int63n(supply + 1); allowance > 0 {
		fixture.Allowances = append(fixture.Allowances, state.Allowance{
			Owner:   fuzzOwner,
			Spender: fuzzSpender,
			Token:   fuzzToken,
			Amount:  allowance,
		})
	}
	return world
}

// ----------------------------------------------------------------------------
// Operations
// ----------------------------------------------------------------------------

type fuzzOp int

const (
	opApprove fuzzOp = iota
	opTransferFrom
	opTransferToken
	numFuzzOps
)

func (op fuzzOp) String() string {
	switch op {
	case opApprove:
		return "approve"
	case opTransferFrom:
		return "transferFrom"
	case opTransferToken:
		return "transferToken"
	}
	return "unknown"
}

type fuzzStep struct {
	op       fuzzOp
	receiver hts.AccountID
	amount   int64
	revert   bool
}

func (s fuzzStep) String() string {
	return fmt.Sprintf("%v(%v, %d, revert=%t)", s.op, s.receiver, s.amount, s.revert)
}

func newFuzzStep(random *rand.Rand, world *fuzzWorld) fuzzStep {
	step := fuzzStep{
		op:       fuzzOp(random.Intn(int(numFuzzOps))),
		receiver: world.receivers[random.Intn(len(world.receivers))],
		revert:   random.Intn(8) == 0,
	}
	if step.op == opApprove {
		step.amount = random.Int63n(world.supply + 1)
	} else {
		step.amount = random.Int63n(world.supply/2+1) + 1
	}
	return step
}

// caller is the contract issuing the precompile call of the step.
func (s fuzzStep) caller() hts.AccountID {
	if s.op == opTransferFrom {
		return fuzzSpender
	}
	return fuzzOwner
}

func (s fuzzStep) transaction() (cliUtils.Transaction, error) {
	token := common.Address(fuzzToken.Address())
	var input []byte
	var err error
	switch s.op {
	case opApprove:
		input, err = precompile.TokenServiceABI().Pack("approve",
			token, common.Address(fuzzSpender.Address()), big.NewInt(s.amount))
	case opTransferFrom:
		input, err = precompile.TokenServiceABI().Pack("transferFrom",
			token, common.Address(fuzzOwner.Address()), common.Address(s.receiver.Address()), big.NewInt(s.amount))
	case opTransferToken:
		input, err = precompile.TokenServiceABI().Pack("transferToken",
			token, common.Address(fuzzOwner.Address()), common.Address(s.receiver.Address()), s.amount)
	default:
		err = fmt.Errorf("unknown operation %v", s.op)
	}
	if err != nil {
		return cliUtils.Transaction{}, err
	}
	return cliUtils.Transaction{
		Sender:    fuzzPayer.Address(),
		Recipient: s.caller().Address(),
		Steps: []cliUtils.Step{{
			Kind:   hts.Call,
			Target: hts.PrecompileAddress,
			Input:  input,
		}},
		Revert:   s.revert,
		GasLimit: fuzzGasLimit,
	}, nil
}

// ----------------------------------------------------------------------------
// Checks
// ----------------------------------------------------------------------------

// holdings summarizes the token state checked between transactions.
type holdings struct {
	balances  map[hts.AccountID]int64
	allowance int64
	supply    int64
}

func holdingsOf(ledger *state.Ledger) holdings {
	res := holdings{
		balances:  map[hts.AccountID]int64{},
		allowance: ledger.GetAllowance(fuzzOwner, fuzzSpender, fuzzToken),
	}
	for _, rel := range ledger.Relationships() {
		if rel.Token == fuzzToken {
			res.balances[rel.Account] = rel.Balance
		}
	}
	if token, found := ledger.GetToken(fuzzToken); found {
		res.supply = token.TotalSupply
	}
	return res
}

func (h holdings) total() int64 {
	sum := int64(0)
	for _, balance := range h.balances {
		sum += balance
	}
	return sum
}

// expect derives the holdings after a successful step.
func (h holdings) expect(step fuzzStep) holdings {
	res := holdings{
		balances:  map[hts.AccountID]int64{},
		allowance: h.allowance,
		supply:    h.supply,
	}
	for account, balance := range h.balances {
		res.balances[account] = balance
	}
	switch step.op {
	case opApprove:
		res.allowance = step.amount
	case opTransferFrom:
		res.allowance -= step.amount
		res.balances[fuzzOwner] -= step.amount
		res.balances[step.receiver] += step.amount
	case opTransferToken:
		res.balances[fuzzOwner] -= step.amount
		res.balances[step.receiver] += step.amount
	}
	return res
}

func (h holdings) diff(want holdings) error {
	var errs []error
	if h.supply != want.supply {
		errs = append(errs, fmt.Errorf("total supply changed from %d to %d", want.supply, h.supply))
	}
	if h.allowance != want.allowance {
		errs = append(errs, fmt.Errorf("unexpected allowance, wanted %d, got %d", want.allowance, h.allowance))
	}
	for account, balance := range want.balances {
		if got := h.balances[account]; got != balance {
			errs = append(errs, fmt.Errorf("unexpected balance of %v, wanted %d, got %d", account, balance, got))
		}
	}
	return errors.Join(errs...)
}

// checkStep verifies the outcome of a single step. A step either applies
// exactly its own update or leaves the holdings untouched.
func checkStep(step fuzzStep, frozen map[hts.AccountID]bool, before, after holdings, receipt hts.Receipt) error {
	if got := after.total(); got != after.supply {
		return fmt.Errorf("balances sum up to %d, total supply is %d", got, after.supply)
	}
	if after.allowance < 0 {
		return fmt.Errorf("negative allowance %d", after.allowance)
	}
	if len(receipt.ChildRecords) != 1 {
		return fmt.Errorf("expected a single child record, got %d", len(receipt.ChildRecords))
	}

	record := receipt.ChildRecords[0].Status
	applied := receipt.Status == hts.Success && record == hts.Success
	if step.revert {
		if receipt.Status != hts.ContractRevertExecuted {
			return fmt.Errorf("reverting transaction ended with status %v", receipt.Status)
		}
		if record.IsSuccess() {
			return fmt.Errorf("reverted record has status %v", record)
		}
	}
	if !applied {
		return after.diff(before)
	}

	switch step.op {
	case opTransferFrom:
		if step.amount > before.allowance {
			return fmt.Errorf("transfer of %d exceeding allowance %d succeeded", step.amount, before.allowance)
		}
		fallthrough
	case opTransferToken:
		if frozen[step.receiver] {
			return fmt.Errorf("frozen receiver %v was credited", step.receiver)
		}
		if step.amount > before.balances[fuzzOwner] {
			return fmt.Errorf("transfer of %d exceeding balance %d succeeded", step.amount, before.balances[fuzzOwner])
		}
	}
	return after.diff(before.expect(step))
}

// fuzzSequence runs a random sequence of steps on a fresh world and checks
// each outcome. On failure, the scenario reproducing the issue is returned.
func fuzzSequence(processor hts.Processor, cache *sigs.Cache, random *rand.Rand, steps int) (*cliUtils.Scenario, error) {
	world := newFuzzWorld(random)
	scenario := &cliUtils.Scenario{Ledger: world.fixture}
	ledger, err := world.fixture.Build()
	if err != nil {
		return nil, err
	}
	frozen := map[hts.AccountID]bool{}
	for _, rel := range world.fixture.Relationships {
		frozen[rel.Account] = rel.Frozen
	}

	for i := 0; i < steps; i++ {
		step := newFuzzStep(random, &world)
		description, err := step.transaction()
		if err != nil {
			return nil, err
		}
		transaction, err := description.ToTransaction(cache)
		if err != nil {
			return nil, err
		}

		before := holdingsOf(ledger)
		receipt, err := processor.Run(transaction, ledger)
		scenario.Transactions = append(scenario.Transactions, description)
		if err != nil {
			return scenario, fmt.Errorf("step %d %v: %w", i, step, err)
		}
		if err := checkStep(step, frozen, before, holdingsOf(ledger), receipt); err != nil {
			return scenario, fmt.Errorf("step %d %v: %w", i, step, err)
		}
		log.Trace("Fuzz step passed", "step", step, "status", receipt.Status, "record", receipt.ChildRecords[0].Status)

		// Passed steps are pinned to their observed outcome for replays.
		last := &scenario.Transactions[len(scenario.Transactions)-1]
		last.Expect = &cliUtils.Expectation{
			Status:  receipt.Status,
			Records: []hts.Status{receipt.ChildRecords[0].Status},
		}
	}
	return scenario, nil
}
