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
	"fmt"
	"math/big"
	"reflect"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// reportsStatus is true for token service functions, whose first result is
// the response code of the operation.
func reportsStatus(method *abi.Method) bool {
	return len(method.Outputs) > 0 && method.Outputs[0].Name == "responseCode"
}

// encodeResult packs the response code and the values of an outcome into
// the outputs of the called function. Functions without a response code
// only receive the values.
func encodeResult(method *abi.Method, status hts.Status, values []any) (hts.Data, error) {
	outputs := method.Outputs
	args := make([]any, 0, len(outputs))
	if reportsStatus(method) {
		args = append(args, int64(status))
		outputs = outputs[1:]
	}
	for i, output := range outputs {
		if i >= len(values) || !status.IsSuccess() {
			args = append(args, zeroValue(output.Type))
			continue
		}
		value, err := convertValue(values[i], output.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s result %d: %w", method.Name, i, err)
		}
		args = append(args, value)
	}
	return method.Outputs.Pack(args...)
}

// convertValue turns an engine value into the Go type the ABI packer
// expects for the given output type.
func convertValue(value any, typ abi.Type) (any, error) {
	switch v := value.(type) {
	case hts.Address:
		return common.Address(v), nil
	case int64:
		if (typ.T == abi.IntTy || typ.T == abi.UintTy) && typ.Size > 64 {
			return big.NewInt(v), nil
		}
	}
	res := reflect.ValueOf(value)
	target := typ.GetType()
	if !res.Type().ConvertibleTo(target) {
		return nil, fmt.Errorf("cannot convert %T to %v", value, typ)
	}
	return res.Convert(target).Interface(), nil
}

func zeroValue(typ abi.Type) any {
	if (typ.T == abi.IntTy || typ.T == abi.UintTy) && typ.Size > 64 {
		return new(big.Int)
	}
	return reflect.Zero(typ.GetType()).Interface()
}

func eventTopic(name string) hts.Hash {
	return hts.Hash(tokenFacadeABI.Events[name].ID)
}

func addressTopic(address hts.Address) hts.Hash {
	return hts.Hash(common.BytesToHash(address[:]))
}

func valueWord(value int64) hts.Hash {
	return uint256.NewInt(uint64(value)).Bytes32()
}

// transferLog creates the ERC Transfer event. ERC-721 transfers index the
// serial; ERC-20 transfers carry the amount as data.
func transferLog(token, from, to hts.Address, value int64, nft bool) hts.Log {
	return valueLog("Transfer", token, from, to, value, nft)
}

// approvalLog creates the ERC Approval event.
func approvalLog(token, owner, spender hts.Address, value int64, nft bool) hts.Log {
	return valueLog("Approval", token, owner, spender, value, nft)
}

func valueLog(event string, token, first, second hts.Address, value int64, indexed bool) hts.Log {
	log := hts.Log{
		Address: token,
		Topics:  []hts.Hash{eventTopic(event), addressTopic(first), addressTopic(second)},
	}
	word := valueWord(value)
	if indexed {
		log.Topics = append(log.Topics, word)
	} else {
		log.Data = word[:]
	}
	return log
}

func approvalForAllLog(token, owner, operator hts.Address, approved bool) hts.Log {
	var word hts.Hash
	if approved {
		word[31] = 1
	}
	return hts.Log{
		Address: token,
		Topics:  []hts.Hash{eventTopic("ApprovalForAll"), addressTopic(owner), addressTopic(operator)},
		Data:    word[:],
	}
}
