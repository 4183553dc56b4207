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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

// MaxRecursiveDepth is the maximum depth of nested calls.
const MaxRecursiveDepth = 1024

var (
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	revertArgs     = abi.Arguments{{Type: mustType("string")}}
)

func mustType(name string) abi.Type {
	res, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return res
}

// transactionContext is the state shared by all calls of a transaction.
type transactionContext struct {
	interpreter hts.Interpreter
	dispatcher  hts.Dispatcher
	config      precompile.Config
	coordinator *precompile.Coordinator
	signatures  hts.SignatureVerifier
}

// runContext is handed to the code running in a call frame. Calls issued
// through it become children of that frame.
type runContext struct {
	*transactionContext
	frame *hts.CallFrame
}

func (r runContext) View() hts.LedgerView {
	return r.coordinator.View()
}

func (r runContext) Call(kind hts.CallKind, parameters hts.CallParameters) (hts.CallResult, error) {
	errResult := hts.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}
	depth := 0
	if r.frame != nil {
		depth = r.frame.Depth() + 1
	}
	if depth > MaxRecursiveDepth {
		return errResult, nil
	}

	code := parameters.Recipient
	if kind.IsDelegate() {
		code = parameters.CodeAddress
	}
	frame := hts.NewCallFrame(r.frame, kind, parameters.Sender, parameters.Recipient, code)
	static := frame.IsStatic()

	value := parameters.Value
	if kind == hts.StaticCall || kind == hts.DelegateCall {
		value = 0
	}
	if value < 0 || (static && value != 0) {
		return errResult, nil
	}

	snapshot := r.coordinator.Snapshot()
	if kind == hts.Call && value > 0 {
		if err := r.transferValue(parameters.Sender, parameters.Recipient, value); err != nil {
			log.Debug("Value transfer failed", "sender", parameters.Sender, "recipient", parameters.Recipient, "value", value, "err", err)
			r.coordinator.RevertToSnapshot(snapshot)
			return errResult, nil
		}
	}

	if code == hts.PrecompileAddress {
		return r.dispatch(frame, parameters.Input, parameters.Gas, snapshot), nil
	}
	if token, isProxy := r.tokenProxy(code); isProxy && !kind.IsDelegate() {
		// The proxy delegates to the precompile, keeping the caller as
		// the sender.
		input, err := precompile.EncodeRedirect(token, parameters.Input)
		if err != nil {
			return errResult, err
		}
		proxied := hts.NewCallFrame(frame, hts.DelegateCall, parameters.Sender, parameters.Recipient, hts.PrecompileAddress)
		return r.dispatch(proxied, input, parameters.Gas, snapshot), nil
	}

	account, found := accountOf(r.View(), code)
	if !found || !account.IsContract {
		return hts.CallResult{Success: true, GasLeft: parameters.Gas}, nil
	}

	result, err := r.interpreter.Run(hts.Parameters{
		Context:     runContext{transactionContext: r.transactionContext, frame: frame},
		Frame:       frame,
		Static:      static,
		Depth:       depth,
		Gas:         parameters.Gas,
		Recipient:   parameters.Recipient,
		Sender:      parameters.Sender,
		CodeAddress: code,
		Input:       parameters.Input,
		Value:       value,
	})
	if err != nil || !result.Success {
		r.coordinator.RevertToSnapshot(snapshot)
		if !isRevert(result, err) {
			// only reverts return unused gas
			result.GasLeft = 0
		}
	}
	return hts.CallResult{
		Output:  result.Output,
		GasLeft: result.GasLeft,
		Success: result.Success,
	}, err
}

// dispatch forwards a call to the token service precompile. A reverting
// precompile discards everything done since the snapshot and returns the
// revert reason in the standard Error(string) encoding.
func (r runContext) dispatch(frame *hts.CallFrame, input hts.Data, gas hts.Gas, snapshot int) hts.CallResult {
	result := r.dispatcher.Dispatch(input, hts.Invocation{
		Frame:      frame,
		Gas:        gas,
		Records:    r.coordinator,
		Signatures: r.signatures,
	})
	gasLeft := max(gas-result.GasUsed, 0)
	if !result.Success {
		r.coordinator.RevertToSnapshot(snapshot)
		return hts.CallResult{Output: encodeRevert(result.RevertReason), GasLeft: gasLeft}
	}
	return hts.CallResult{Output: result.Output, GasLeft: gasLeft, Success: true}
}

func (r runContext) tokenProxy(address hts.Address) (hts.Address, bool) {
	if !address.IsMirror() {
		return hts.Address{}, false
	}
	_, found := r.View().GetToken(hts.TokenID(address.EntityNum()))
	return address, found
}

// transferValue moves HBAR between accounts. Unknown aliases receiving value
// are lazily created as hollow accounts.
func (r runContext) transferValue(sender, recipient hts.Address, value int64) error {
	if sender == recipient {
		return nil
	}
	view := r.View()
	from, found := accountOf(view, sender)
	if !found {
		return fmt.Errorf("unknown sender %v", sender)
	}
	to, found := accountOf(view, recipient)
	if !found {
		if recipient.IsMirror() {
			return fmt.Errorf("unknown recipient %v", recipient)
		}
		id, err := precompile.CreateHollowAccount(r.coordinator, r.config, recipient)
		if err != nil {
			return err
		}
		to = hts.Account{ID: id}
	}
	return r.coordinator.Apply(
		hts.HbarAdjust{Account: from.ID, Delta: -value},
		hts.HbarAdjust{Account: to.ID, Delta: value},
	)
}

func accountOf(view hts.LedgerView, address hts.Address) (hts.Account, bool) {
	id := hts.AccountID(address.EntityNum())
	if !address.IsMirror() {
		var found bool
		if id, found = view.ResolveAlias(address); !found {
			return hts.Account{}, false
		}
	}
	account, found := view.GetAccount(id)
	if !found || account.Deleted {
		return hts.Account{}, false
	}
	return account, true
}

func isRevert(result hts.Result, err error) bool {
	return err == nil && !result.Success && (result.GasLeft > 0 || len(result.Output) > 0)
}

func encodeRevert(reason string) hts.Data {
	data, err := revertArgs.Pack(reason)
	if err != nil {
		return nil
	}
	return append(append(hts.Data{}, revertSelector...), data...)
}

// DecodeRevert extracts the reason of a revert output produced by the
// precompile or by contracts using the standard Error(string) encoding.
func DecodeRevert(output hts.Data) (string, error) {
	reason, err := abi.UnpackRevert(output)
	if err != nil {
		return "", errors.Join(ErrNoRevertReason, err)
	}
	return reason, nil
}

// ErrNoRevertReason is reported for revert outputs without a decodable
// reason.
const ErrNoRevertReason = hts.ConstError("no revert reason")
