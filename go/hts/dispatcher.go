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

//go:generate mockgen -source dispatcher.go -destination dispatcher_mock.go -package hts

// Dispatcher is the entry point of the token service precompile. It is
// invoked whenever contract code calls PrecompileAddress. Any failure is
// reported through the result and the records; Dispatch itself never fails.
type Dispatcher interface {
	Dispatch(input Data, invocation Invocation) PrecompileResult
}

// Invocation describes a single call into the precompile.
type Invocation struct {
	Frame      *CallFrame // the frame of the precompile call itself
	Gas        Gas
	Records    RecordKeeper
	Signatures SignatureVerifier
}

// PrecompileResult is the primary result of a dispatched call. Child records
// are accumulated by the RecordKeeper of the invocation.
type PrecompileResult struct {
	Output       Data
	Success      bool // false if the call reverts
	GasUsed      Gas
	RevertReason string
}

// RecordKeeper collects the child records and pending effects of the
// current transaction.
type RecordKeeper interface {
	// View returns the ledger as seen by the current call, including the
	// effects of operations dispatched earlier in the same transaction.
	View() LedgerView
	// Record appends a child record together with its effects. Records of
	// failed operations carry no effects.
	Record(record ChildRecord, effects []Effect) error
}
