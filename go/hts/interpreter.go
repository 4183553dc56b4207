// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hts

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package hts

// Interpreter runs the code of a contract. Contract code may issue nested
// calls through the RunContext of its parameters.
type Interpreter interface {
	Run(Parameters) (Result, error)
}

// Parameters summarizes the input of a contract execution.
type Parameters struct {
	Context     RunContext
	Frame       *CallFrame
	Static      bool
	Depth       int
	Gas         Gas
	Recipient   Address
	Sender      Address
	CodeAddress Address
	Input       Data
	Value       int64 // in tinybars
}

// RunContext provides the facilities contract code needs to interact with
// its environment.
type RunContext interface {
	Call(kind CallKind, parameters CallParameters) (CallResult, error)
	View() LedgerView
}

type CallParameters struct {
	Sender      Address
	Recipient   Address
	CodeAddress Address // only relevant for delegate calls
	Value       int64   // ignored by static and delegate calls
	Input       Data
	Gas         Gas
}

type CallResult struct {
	Output  Data
	GasLeft Gas
	Success bool // false if the execution ended in a revert, true otherwise
}

// Result summarizes the result of a contract execution.
type Result struct {
	Success bool // false if the execution ended in a revert, true otherwise
	Output  Data
	GasLeft Gas
}
