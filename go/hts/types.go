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

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a 20-byte EVM address. Ledger entities are reachable either
// through their mirror address, the long-zero form carrying the entity number
// in its last eight bytes, or through an alias bound to an account.
type Address [20]byte

// Hash is a 32-byte hash, used for log topics and body digests.
type Hash [32]byte

// Data represents the input or output of contract invocations.
type Data []byte

// Gas represents the type used to represent gas values.
type Gas int64

// AccountID is the entity number of an account. Contracts are accounts.
type AccountID uint64

// TokenID is the entity number of a token. The zero value denotes HBAR
// wherever a token denomination is expected.
type TokenID uint64

// HBAR is the pseudo token used to denominate fees and allowances in the
// native currency.
const HBAR TokenID = 0

// NftID identifies a single serial of a non-fungible token.
type NftID struct {
	Token  TokenID
	Serial int64
}

// PrecompileAddress is the fixed address of the token service precompile.
var PrecompileAddress = MirrorAddress(0x167)

// MirrorAddress returns the long-zero address of the given entity number.
func MirrorAddress(num uint64) Address {
	var res Address
	binary.BigEndian.PutUint64(res[12:], num)
	return res
}

// IsMirror reports whether the address is in long-zero form.
func (a Address) IsMirror() bool {
	for _, b := range a[:12] {
		if b != 0 {
			return false
		}
	}
	return true
}

// EntityNum returns the entity number encoded in a mirror address. The result
// is meaningless for non-mirror addresses.
func (a Address) EntityNum() uint64 {
	return binary.BigEndian.Uint64(a[12:])
}

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func (id AccountID) Address() Address {
	return MirrorAddress(uint64(id))
}

func (id AccountID) String() string {
	return fmt.Sprintf("0.0.%d", uint64(id))
}

func (id TokenID) Address() Address {
	return MirrorAddress(uint64(id))
}

func (id TokenID) String() string {
	if id == HBAR {
		return "HBAR"
	}
	return fmt.Sprintf("0.0.%d", uint64(id))
}

func (n NftID) String() string {
	return fmt.Sprintf("%v/%d", n.Token, n.Serial)
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg[:], data)
	return nil
}

// Log is the type summarizing a log message emitted as a side effect of a
// precompile invocation.
type Log struct {
	Address Address
	Topics  []Hash
	Data    Data
}

// CallKind is an enum enabling the differentiation of the different types
// of recursive contract calls supported in the EVM.
type CallKind int

const (
	Call CallKind = iota
	DelegateCall
	StaticCall
	CallCode
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case StaticCall:
		return "static_call"
	case DelegateCall:
		return "delegate_call"
	case CallCode:
		return "call_code"
	default:
		return "unknown"
	}
}

// IsDelegate reports whether code runs in the storage context of its caller.
func (k CallKind) IsDelegate() bool {
	return k == DelegateCall || k == CallCode
}

func (k CallKind) MarshalJSON() ([]byte, error) {
	var res string
	switch k {
	case Call, StaticCall, DelegateCall, CallCode:
		res = k.String()
	default:
		return nil, fmt.Errorf("invalid call kind: %v", k)
	}
	return json.Marshal(res)
}

func (k *CallKind) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err != nil {
		return err
	}
	switch strings.ToLower(kind) {
	case "call":
		*k = Call
	case "static_call":
		*k = StaticCall
	case "delegate_call":
		*k = DelegateCall
	case "call_code":
		*k = CallCode
	default:
		return fmt.Errorf("invalid call kind: %v", kind)
	}
	return nil
}
