// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package relay provides the interpreter of relay contracts. A relay contract
// has no code of its own; its call data is a script of calls it issues in
// order. Relays are used to build arbitrary call chains in tests and in the
// scenario driver without compiling EVM code.
package relay

import (
	"fmt"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// StepGas is charged for every call issued by a relay.
const StepGas = 700

// ErrReverted is the revert reason of scripts ending in a revert.
const ErrReverted = hts.ConstError("relay reverted")

// Step is a single call issued by a relay contract. For delegate calls the
// target is the code address; the call runs in the storage context of the
// relay. If MustSucceed is set, a failing call makes the relay revert with
// the output of the failed call.
type Step struct {
	Kind        hts.CallKind
	Target      hts.Address
	Value       int64
	Input       hts.Data
	MustSucceed bool
}

// Script is the call data of a relay contract.
type Script struct {
	Steps []Step
	// Revert makes the relay revert after all steps have been issued.
	Revert bool
}

// Call creates a step calling the target, requiring success.
func Call(target hts.Address, input hts.Data) Step {
	return Step{Kind: hts.Call, Target: target, Input: input, MustSucceed: true}
}

// StaticCall creates a step static-calling the target, requiring success.
func StaticCall(target hts.Address, input hts.Data) Step {
	return Step{Kind: hts.StaticCall, Target: target, Input: input, MustSucceed: true}
}

// DelegateCall creates a step running the target's code in the relay's
// context, requiring success.
func DelegateCall(target hts.Address, input hts.Data) Step {
	return Step{Kind: hts.DelegateCall, Target: target, Input: input, MustSucceed: true}
}

type abiStep struct {
	Kind        uint8
	Target      common.Address
	Value       int64
	Input       []byte
	MustSucceed bool
}

var scriptArgs = func() abi.Arguments {
	steps, err := abi.NewType("tuple[]", "", []abi.ArgumentMarshaling{
		{Name: "kind", Type: "uint8"},
		{Name: "target", Type: "address"},
		{Name: "value", Type: "int64"},
		{Name: "input", Type: "bytes"},
		{Name: "mustSucceed", Type: "bool"},
	})
	if err != nil {
		panic(err)
	}
	revert, err := abi.NewType("bool", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Name: "steps", Type: steps}, {Name: "revert", Type: revert}}
}()

// Encode produces the call data running the given script.
func Encode(script Script) (hts.Data, error) {
	steps := make([]abiStep, 0, len(script.Steps))
	for _, step := range script.Steps {
		steps = append(steps, abiStep{
			Kind:        uint8(step.Kind),
			Target:      common.Address(step.Target),
			Value:       step.Value,
			Input:       step.Input,
			MustSucceed: step.MustSucceed,
		})
	}
	return scriptArgs.Pack(steps, script.Revert)
}

// MustEncode is Encode panicking on errors; intended for tests.
func MustEncode(steps ...Step) hts.Data {
	data, err := Encode(Script{Steps: steps})
	if err != nil {
		panic(err)
	}
	return data
}

// Decode parses the call data of a relay contract. Empty input is the empty
// script.
func Decode(input hts.Data) (Script, error) {
	if len(input) == 0 {
		return Script{}, nil
	}
	values, err := scriptArgs.Unpack(input)
	if err != nil {
		return Script{}, fmt.Errorf("invalid relay script: %w", err)
	}
	var decoded struct {
		Steps  []abiStep
		Revert bool
	}
	if err := scriptArgs.Copy(&decoded, values); err != nil {
		return Script{}, fmt.Errorf("invalid relay script: %w", err)
	}
	script := Script{Revert: decoded.Revert}
	for _, step := range decoded.Steps {
		kind := hts.CallKind(step.Kind)
		if kind > hts.CallCode {
			return Script{}, fmt.Errorf("invalid call kind %d", step.Kind)
		}
		script.Steps = append(script.Steps, Step{
			Kind:        kind,
			Target:      hts.Address(step.Target),
			Value:       step.Value,
			Input:       step.Input,
			MustSucceed: step.MustSucceed,
		})
	}
	return script, nil
}

type interpreter struct{}

// NewInterpreter creates an interpreter running every contract as a relay.
func NewInterpreter() hts.Interpreter {
	return interpreter{}
}

// Run issues the calls of the script in the input. The output is the output
// of the last call.
func (interpreter) Run(params hts.Parameters) (hts.Result, error) {
	script, err := Decode(params.Input)
	if err != nil {
		log.Debug("Relay failed", "contract", params.Recipient, "err", err)
		return hts.Result{}, nil
	}

	gas := params.Gas
	var output hts.Data
	for i, step := range script.Steps {
		if gas < StepGas {
			return hts.Result{}, nil
		}
		gas -= StepGas

		call := hts.CallParameters{
			Sender:    params.Recipient,
			Recipient: step.Target,
			Value:     step.Value,
			Input:     step.Input,
			Gas:       gas,
		}
		if step.Kind.IsDelegate() {
			call.Sender = params.Sender
			call.Recipient = params.Recipient
			call.CodeAddress = step.Target
		}
		result, err := params.Context.Call(step.Kind, call)
		if err != nil {
			return hts.Result{}, err
		}
		gas = result.GasLeft
		output = result.Output
		if !result.Success && step.MustSucceed {
			log.Debug("Relay step failed", "contract", params.Recipient, "step", i, "target", step.Target)
			return hts.Result{Output: output, GasLeft: gas}, nil
		}
	}
	if script.Revert {
		return hts.Result{Output: hts.Data(ErrReverted.Error()), GasLeft: gas}, nil
	}
	return hts.Result{Success: true, Output: output, GasLeft: gas}, nil
}
