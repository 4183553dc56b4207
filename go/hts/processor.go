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

//go:generate mockgen -source processor.go -destination processor_mock.go -package hts

// Processor runs top-level contract call transactions hosting the token
// service precompile.
type Processor interface {
	Run(Transaction, Ledger) (Receipt, error)
}

// Transaction is a contract call issued by a payer account.
type Transaction struct {
	Sender     Address
	Recipient  Address
	Input      Data
	Value      int64
	GasLimit   Gas
	Signatures SignatureVerifier
}

// Receipt summarizes the outcome of a transaction. Child records are listed
// even if the transaction reverted.
type Receipt struct {
	Success      bool
	Status       Status
	Output       Data
	GasUsed      Gas
	Logs         []Log
	ChildRecords []ChildRecord
}
