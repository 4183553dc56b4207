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
	"fmt"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/ethereum/go-ethereum/log"
)

const (
	TxGas                   = 21_000
	TxDataNonZeroGasEIP2028 = 16
	TxDataZeroGasEIP2028    = 4
)

// NewProcessor creates a transaction processor running contract code on the
// given interpreter and forwarding calls of the token service address and of
// token proxies to the dispatcher. The configuration controls the lazy
// creation of accounts receiving plain value transfers.
func NewProcessor(interpreter hts.Interpreter, dispatcher hts.Dispatcher, config precompile.Config) hts.Processor {
	return &processor{
		interpreter: interpreter,
		dispatcher:  dispatcher,
		config:      config,
	}
}

type processor struct {
	interpreter hts.Interpreter
	dispatcher  hts.Dispatcher
	config      precompile.Config
}

// Run executes the transaction. All ledger updates of the transaction are
// collected by a coordinator and only applied to the ledger if the top-level
// call succeeds.
func (p *processor) Run(transaction hts.Transaction, ledger hts.Ledger) (hts.Receipt, error) {
	errorReceipt := hts.Receipt{
		Status:  hts.ContractRevertExecuted,
		GasUsed: transaction.GasLimit,
	}
	if _, found := accountOf(ledger, transaction.Sender); !found {
		return hts.Receipt{}, fmt.Errorf("unknown transaction sender %v", transaction.Sender)
	}

	gas := transaction.GasLimit
	intrinsicGas := intrinsicGas(transaction)
	if gas < intrinsicGas {
		return errorReceipt, nil
	}
	gas -= intrinsicGas

	coordinator := precompile.NewCoordinator(ledger)
	context := runContext{transactionContext: &transactionContext{
		interpreter: p.interpreter,
		dispatcher:  p.dispatcher,
		config:      p.config,
		coordinator: coordinator,
		signatures:  transaction.Signatures,
	}}
	result, err := context.Call(hts.Call, hts.CallParameters{
		Sender:    transaction.Sender,
		Recipient: transaction.Recipient,
		Value:     transaction.Value,
		Input:     transaction.Input,
		Gas:       gas,
	})
	if err != nil {
		return hts.Receipt{}, err
	}
	if err := coordinator.Finalize(result.Success, ledger); err != nil {
		return hts.Receipt{}, err
	}

	receipt := hts.Receipt{
		Success:      result.Success,
		Status:       hts.Success,
		Output:       result.Output,
		GasUsed:      transaction.GasLimit - result.GasLeft,
		ChildRecords: coordinator.Records(),
	}
	if !result.Success {
		receipt.Status = hts.ContractRevertExecuted
	}
	for _, record := range receipt.ChildRecords {
		if record.Status == hts.Success {
			receipt.Logs = append(receipt.Logs, record.Logs...)
		}
	}
	log.Debug("Processed transaction", "sender", transaction.Sender, "recipient", transaction.Recipient,
		"status", receipt.Status, "records", len(receipt.ChildRecords), "gasUsed", receipt.GasUsed)
	return receipt, nil
}

func intrinsicGas(transaction hts.Transaction) hts.Gas {
	gas := hts.Gas(TxGas)
	nonZeroBytes := hts.Gas(0)
	for _, inputByte := range transaction.Input {
		if inputByte != 0 {
			nonZeroBytes++
		}
	}
	zeroBytes := hts.Gas(len(transaction.Input)) - nonZeroBytes
	gas += zeroBytes * TxDataZeroGasEIP2028
	gas += nonZeroBytes * TxDataNonZeroGasEIP2028
	return gas
}
