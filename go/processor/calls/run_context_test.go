// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package calls

import (
	"bytes"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/Fantom-foundation/tokenservice/go/state"
	"go.uber.org/mock/gomock"
)

const (
	sender   hts.AccountID = 1001
	contract hts.AccountID = 1002
	token    hts.TokenID   = 1010
)

var alias = hts.Address{0x12, 0x34}

func newLedger() *state.Ledger {
	ledger := state.NewLedger()
	ledger.PutAccount(hts.Account{ID: sender, Key: hts.Ed25519Key{1}, Balance: 1000})
	ledger.PutAccount(hts.Account{ID: contract, Key: hts.ContractIDKey{Contract: contract}, IsContract: true})
	ledger.PutToken(hts.Token{ID: token, Name: "Token", Symbol: "TKN", Treasury: sender})
	return ledger
}

func newRunContext(interpreter hts.Interpreter, dispatcher hts.Dispatcher, ledger hts.LedgerView) runContext {
	return runContext{transactionContext: &transactionContext{
		interpreter: interpreter,
		dispatcher:  dispatcher,
		config:      precompile.DefaultConfig,
		coordinator: precompile.NewCoordinator(ledger),
	}}
}

func callOf(recipient hts.Address, gas hts.Gas) hts.CallParameters {
	return hts.CallParameters{
		Sender:    sender.Address(),
		Recipient: recipient,
		Gas:       gas,
	}
}

func TestRunContext_InterpreterResultIsHandledCorrectly(t *testing.T) {
	tests := map[string]struct {
		result  hts.Result
		err     error
		success bool
		gasLeft hts.Gas
		output  []byte
	}{
		"successful": {
			result:  hts.Result{Success: true, GasLeft: 10},
			success: true,
			gasLeft: 10,
		},
		"output": {
			result:  hts.Result{Success: true, Output: []byte("some output")},
			success: true,
			output:  []byte("some output"),
		},
		"revert keeps gas": {
			result:  hts.Result{Success: false, GasLeft: 10, Output: []byte("reason")},
			gasLeft: 10,
			output:  []byte("reason"),
		},
		"failure consumes gas": {
			result: hts.Result{Success: false},
		},
		"error consumes gas": {
			result: hts.Result{Success: false, GasLeft: 10},
			err:    hts.ConstError("interpreter failure"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			interpreter := hts.NewMockInterpreter(ctrl)
			interpreter.EXPECT().Run(gomock.Any()).Return(test.result, test.err)

			context := newRunContext(interpreter, nil, newLedger())
			result, err := context.Call(hts.Call, callOf(contract.Address(), 1000))
			if err != test.err {
				t.Errorf("unexpected error, wanted %v, got %v", test.err, err)
			}
			if want, got := test.success, result.Success; want != got {
				t.Errorf("unexpected success, wanted %t, got %t", want, got)
			}
			if want, got := test.gasLeft, result.GasLeft; want != got {
				t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
			}
			if !bytes.Equal(test.output, result.Output) {
				t.Errorf("unexpected output, wanted %q, got %q", test.output, result.Output)
			}
		})
	}
}

func TestRunContext_InterpreterSeesCallFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := hts.NewMockInterpreter(ctrl)
	interpreter.EXPECT().Run(gomock.Any()).DoAndReturn(func(params hts.Parameters) (hts.Result, error) {
		frame := params.Frame
		if frame == nil || frame.Parent != nil || frame.Kind != hts.StaticCall {
			t.Errorf("unexpected frame %+v", frame)
		}
		if !params.Static || params.Depth != 0 {
			t.Errorf("unexpected parameters: static %t, depth %d", params.Static, params.Depth)
		}
		if want, got := contract.Address(), params.CodeAddress; want != got {
			t.Errorf("unexpected code address, wanted %v, got %v", want, got)
		}
		return hts.Result{Success: true}, nil
	})

	context := newRunContext(interpreter, nil, newLedger())
	if _, err := context.Call(hts.StaticCall, callOf(contract.Address(), 1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunContext_CallsToAccountsWithoutCodeSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	context := newRunContext(hts.NewMockInterpreter(ctrl), hts.NewMockDispatcher(ctrl), newLedger())
	result, err := context.Call(hts.Call, callOf(sender.Address(), 1000))
	if err != nil || !result.Success || result.GasLeft != 1000 {
		t.Errorf("unexpected result %+v, err %v", result, err)
	}
}

func TestRunContext_DepthIsLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	context := newRunContext(hts.NewMockInterpreter(ctrl), hts.NewMockDispatcher(ctrl), newLedger())
	for i := 0; i <= MaxRecursiveDepth; i++ {
		context.frame = hts.NewCallFrame(context.frame, hts.Call, sender.Address(), contract.Address(), contract.Address())
	}
	result, err := context.Call(hts.Call, callOf(contract.Address(), 1000))
	if err != nil || result.Success || result.GasLeft != 1000 {
		t.Errorf("unexpected result %+v, err %v", result, err)
	}
}

func TestRunContext_ValueTransfers(t *testing.T) {
	tests := map[string]struct {
		kind      hts.CallKind
		recipient hts.Address
		value     int64
		success   bool
		balance   int64
	}{
		"to existing account": {
			kind:      hts.Call,
			recipient: contract.Address(),
			value:     10,
			success:   true,
			balance:   990,
		},
		"to unknown alias": {
			kind:      hts.Call,
			recipient: alias,
			value:     10,
			success:   true,
			balance:   990,
		},
		"to unknown mirror address": {
			kind:      hts.Call,
			recipient: hts.MirrorAddress(5000),
			value:     10,
			balance:   1000,
		},
		"exceeding balance": {
			kind:      hts.Call,
			recipient: contract.Address(),
			value:     1001,
			balance:   1000,
		},
		"negative value": {
			kind:      hts.Call,
			recipient: contract.Address(),
			value:     -1,
			balance:   1000,
		},
		"in static call": {
			kind:      hts.StaticCall,
			recipient: contract.Address(),
			value:     10,
			success:   true,
			balance:   1000,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			interpreter := hts.NewMockInterpreter(ctrl)
			interpreter.EXPECT().Run(gomock.Any()).Return(hts.Result{Success: true}, nil).AnyTimes()

			context := newRunContext(interpreter, nil, newLedger())
			params := callOf(test.recipient, 1000)
			params.Value = test.value
			result, err := context.Call(test.kind, params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := test.success, result.Success; want != got {
				t.Errorf("unexpected success, wanted %t, got %t", want, got)
			}
			account, _ := context.View().GetAccount(sender)
			if want, got := test.balance, account.Balance; want != got {
				t.Errorf("unexpected sender balance, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestRunContext_ValueTransfersLazilyCreateAccounts(t *testing.T) {
	context := newRunContext(nil, nil, newLedger())
	params := callOf(alias, 1000)
	params.Value = 10
	result, err := context.Call(hts.Call, params)
	if err != nil || !result.Success {
		t.Fatalf("transfer failed: %+v, %v", result, err)
	}

	id, found := context.View().ResolveAlias(alias)
	if !found {
		t.Fatalf("no account created for alias")
	}
	account, _ := context.View().GetAccount(id)
	if !account.IsHollow() || account.Balance != 10 {
		t.Errorf("unexpected account %+v", account)
	}
	records := context.coordinator.Records()
	if len(records) != 1 || records[0].Kind != hts.OpLazyCreate {
		t.Errorf("unexpected records %v", records)
	}
}

func TestRunContext_PrecompileCallsAreDispatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := hts.NewMockDispatcher(ctrl)
	input := hts.Data{1, 2, 3, 4}
	dispatcher.EXPECT().Dispatch(input, gomock.Any()).DoAndReturn(func(_ hts.Data, invocation hts.Invocation) hts.PrecompileResult {
		if want, got := hts.Gas(1000), invocation.Gas; want != got {
			t.Errorf("unexpected gas, wanted %d, got %d", want, got)
		}
		if frame := invocation.Frame; frame.Kind != hts.Call || frame.CodeAddress != hts.PrecompileAddress || frame.Sender != sender.Address() {
			t.Errorf("unexpected frame %+v", frame)
		}
		return hts.PrecompileResult{Output: hts.Data{5}, Success: true, GasUsed: 100}
	})

	context := newRunContext(nil, dispatcher, newLedger())
	params := callOf(hts.PrecompileAddress, 1000)
	params.Input = input
	result, err := context.Call(hts.Call, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.GasLeft != 900 || !bytes.Equal(result.Output, []byte{5}) {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRunContext_PrecompileRevertsReportTheirReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := hts.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(hts.PrecompileResult{GasUsed: 1000, RevertReason: "some reason"})

	context := newRunContext(nil, dispatcher, newLedger())
	result, err := context.Call(hts.Call, callOf(hts.PrecompileAddress, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.GasLeft != 0 {
		t.Errorf("unexpected result %+v", result)
	}
	reason, err := DecodeRevert(result.Output)
	if err != nil {
		t.Fatalf("failed to decode revert reason: %v", err)
	}
	if want, got := "some reason", reason; want != got {
		t.Errorf("unexpected reason, wanted %q, got %q", want, got)
	}
}

func TestRunContext_TokenProxiesDelegateToThePrecompile(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := hts.NewMockDispatcher(ctrl)
	input := hts.Data{0xaa, 0xbb, 0xcc, 0xdd}
	want, err := precompile.EncodeRedirect(token.Address(), input)
	if err != nil {
		t.Fatalf("failed to encode redirect: %v", err)
	}
	dispatcher.EXPECT().Dispatch(want, gomock.Any()).DoAndReturn(func(_ hts.Data, invocation hts.Invocation) hts.PrecompileResult {
		frame := invocation.Frame
		if frame.Kind != hts.DelegateCall || frame.Sender != sender.Address() || frame.Recipient != token.Address() {
			t.Errorf("unexpected precompile frame %+v", frame)
		}
		if proxy := frame.Parent; proxy == nil || proxy.Recipient != token.Address() || proxy.Kind != hts.Call {
			t.Errorf("unexpected proxy frame %+v", proxy)
		}
		return hts.PrecompileResult{Success: true}
	})

	context := newRunContext(nil, dispatcher, newLedger())
	params := callOf(token.Address(), 1000)
	params.Input = input
	if result, err := context.Call(hts.Call, params); err != nil || !result.Success {
		t.Errorf("unexpected result %+v, err %v", result, err)
	}
}

func TestRunContext_RevertingFramesDiscardNestedEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := hts.NewMockInterpreter(ctrl)
	dispatcher := hts.NewMockDispatcher(ctrl)

	effect := hts.FreezeSet{Account: sender, Token: token, Frozen: true}
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ hts.Data, invocation hts.Invocation) hts.PrecompileResult {
		record := hts.ChildRecord{Kind: hts.OpFreeze, Status: hts.Success}
		if err := invocation.Records.Record(record, []hts.Effect{effect}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		return hts.PrecompileResult{Success: true, GasUsed: 10}
	})
	interpreter.EXPECT().Run(gomock.Any()).DoAndReturn(func(params hts.Parameters) (hts.Result, error) {
		nested := hts.CallParameters{Sender: params.Recipient, Recipient: hts.PrecompileAddress, Gas: 100}
		if result, err := params.Context.Call(hts.Call, nested); err != nil || !result.Success {
			t.Errorf("nested call failed: %+v, %v", result, err)
		}
		return hts.Result{Success: false, GasLeft: 5}, nil
	})

	ledger := newLedger()
	ledger.PutRelationship(hts.Relationship{Account: sender, Token: token})
	context := newRunContext(interpreter, dispatcher, ledger)
	result, err := context.Call(hts.Call, callOf(contract.Address(), 1000))
	if err != nil || result.Success {
		t.Fatalf("unexpected result %+v, err %v", result, err)
	}
	records := context.coordinator.Records()
	if len(records) != 1 || records[0].Status != hts.RevertedSuccess {
		t.Errorf("unexpected records %v", records)
	}
	if rel, _ := context.View().GetRelationship(sender, token); rel.Frozen {
		t.Errorf("effect of reverted frame still visible")
	}
}
