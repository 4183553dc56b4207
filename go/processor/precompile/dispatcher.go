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
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/log"
)

// ErrStaticCall is the revert reason of state changing calls entering the
// precompile through a static call.
const ErrStaticCall = hts.ConstError("HTS precompiles are not static")

type dispatcher struct {
	config Config
}

// NewDispatcher creates a token service precompile using the given
// configuration.
func NewDispatcher(config Config) hts.Dispatcher {
	return &dispatcher{config: config}
}

// Dispatch routes the input to an operation, executes it against the view of
// the invocation's record keeper and records the outcome. Structural input
// errors and static calls of state changing operations revert without a
// record.
func (d *dispatcher) Dispatch(input hts.Data, invocation hts.Invocation) hts.PrecompileResult {
	op, err := Route(input)
	if err != nil {
		log.Debug("Rejected token service input", "err", err)
		return hts.PrecompileResult{GasUsed: invocation.Gas, RevertReason: err.Error()}
	}
	kind := op.Kind()
	if !kind.IsView() && enteredStatically(op, invocation.Frame) {
		return hts.PrecompileResult{GasUsed: invocation.Gas, RevertReason: ErrStaticCall.Error()}
	}

	cost := d.config.GasCost
	if kind.IsView() {
		cost = d.config.ViewGasCost
	}
	if invocation.Gas < cost {
		return d.fail(op, hts.ChildRecord{Kind: kind}, hts.InsufficientGas, invocation.Gas, invocation)
	}

	view := invocation.Records.View()
	ctx, err := ResolveCallContext(invocation.Frame, view)
	if err != nil {
		return d.finish(op, Outcome{Record: hts.ChildRecord{Kind: kind}}, err, cost, invocation)
	}
	engine := NewEngine(d.config, invocation.Signatures)
	outcome, err := engine.Execute(op, ctx, view)
	return d.finish(op, outcome, err, cost, invocation)
}

// enteredStatically reports whether the precompile was entered through a
// static call. Calls of token proxies reach the precompile through a
// delegate call frame nested into the frame calling the proxy.
func enteredStatically(op Operation, frame *hts.CallFrame) bool {
	if frame == nil {
		return false
	}
	if frame.Kind == hts.StaticCall {
		return true
	}
	return op.origin().facade &&
		frame.Kind == hts.DelegateCall &&
		frame.Parent != nil &&
		frame.Parent.Kind == hts.StaticCall
}

// finish records the outcome of an operation and encodes the result.
func (d *dispatcher) finish(op Operation, outcome Outcome, err error, cost hts.Gas, invocation hts.Invocation) hts.PrecompileResult {
	status := hts.StatusOf(err)
	if status == hts.FailInvalid {
		log.Warn("Token service operation failed unexpectedly", "op", op.Kind(), "err", err)
	}
	if !status.IsSuccess() {
		return d.fail(op, outcome.Record, status, cost, invocation)
	}

	method := op.origin().method
	var output hts.Data
	if !outcome.Void {
		output, err = encodeResult(method, hts.Success, outcome.Values)
		if err != nil {
			log.Warn("Failed to encode token service result", "op", op.Kind(), "err", err)
			return d.fail(op, outcome.Record, hts.FailInvalid, cost, invocation)
		}
	}
	record := outcome.Record
	record.Status = hts.Success
	record.Output = output
	if err := invocation.Records.Record(record, outcome.Effects); err != nil {
		log.Warn("Failed to record token service outcome", "op", op.Kind(), "err", err)
		return d.fail(op, outcome.Record, hts.FailInvalid, cost, invocation)
	}
	return hts.PrecompileResult{Output: output, Success: true, GasUsed: cost}
}

// fail records a failed operation. Token service functions report the
// status as their response code; ERC functions revert. Unknown receivers
// and insufficient gas revert in either case.
func (d *dispatcher) fail(op Operation, record hts.ChildRecord, status hts.Status, gasUsed hts.Gas, invocation hts.Invocation) hts.PrecompileResult {
	log.Debug("Token service operation failed", "op", op.Kind(), "status", status)
	method := op.origin().method
	record.Status = status
	record.Logs = nil

	reverts := !reportsStatus(method) ||
		status == hts.InsufficientGas ||
		status == hts.InvalidReceivingNodeAccount ||
		status == hts.InvalidAliasKey
	var output hts.Data
	if !reverts {
		var err error
		if output, err = encodeResult(method, status, nil); err != nil {
			reverts = true
		}
	}
	record.Output = output
	if err := invocation.Records.Record(record, nil); err != nil {
		log.Warn("Failed to record token service failure", "op", op.Kind(), "err", err)
	}
	if reverts {
		return hts.PrecompileResult{GasUsed: gasUsed, RevertReason: status.String()}
	}
	return hts.PrecompileResult{Output: output, Success: true, GasUsed: gasUsed}
}
