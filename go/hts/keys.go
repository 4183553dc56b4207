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
	"fmt"
	"strings"
)

// Key is a requirement that must be satisfied to exercise a permission on an
// account or token. The set of key variants is closed; implementations exist
// only in this package.
type Key interface {
	fmt.Stringer
	isKey()
}

// Ed25519Key is a simple key satisfied by an ED25519 signature.
type Ed25519Key [32]byte

// Secp256k1Key is a simple key satisfied by an ECDSA(secp256k1) signature. It
// holds the compressed public key.
type Secp256k1Key [33]byte

// ContractIDKey is satisfied if the named contract is the immediate caller of
// the precompile and executes its own code.
type ContractIDKey struct {
	Contract AccountID
}

// DelegatableContractIDKey is satisfied if the named contract's code or
// storage context is active anywhere on a non-static delegate chain leading
// to the precompile.
type DelegatableContractIDKey struct {
	Contract AccountID
}

// ThresholdKey is satisfied iff at least Threshold of its components are.
type ThresholdKey struct {
	Threshold int
	Keys      []Key
}

// KeyList is satisfied iff all of its components are.
type KeyList struct {
	Keys []Key
}

func (Ed25519Key) isKey()               {}
func (Secp256k1Key) isKey()             {}
func (ContractIDKey) isKey()            {}
func (DelegatableContractIDKey) isKey() {}
func (ThresholdKey) isKey()             {}
func (KeyList) isKey()                  {}

func (k Ed25519Key) String() string {
	return fmt.Sprintf("ed25519(0x%x)", k[:])
}

func (k Secp256k1Key) String() string {
	return fmt.Sprintf("secp256k1(0x%x)", k[:])
}

func (k ContractIDKey) String() string {
	return fmt.Sprintf("contract(%v)", k.Contract)
}

func (k DelegatableContractIDKey) String() string {
	return fmt.Sprintf("delegatable_contract(%v)", k.Contract)
}

func (k ThresholdKey) String() string {
	return fmt.Sprintf("threshold(%d, %s)", k.Threshold, joinKeys(k.Keys))
}

func (k KeyList) String() string {
	return fmt.Sprintf("list(%s)", joinKeys(k.Keys))
}

func joinKeys(keys []Key) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == nil {
			parts = append(parts, "nil")
			continue
		}
		parts = append(parts, key.String())
	}
	return strings.Join(parts, ", ")
}

// IsSimple reports whether the key is a single cryptographic key.
func IsSimple(key Key) bool {
	switch key.(type) {
	case Ed25519Key, Secp256k1Key:
		return true
	}
	return false
}

// HasContractComponent reports whether any component of the key is satisfied
// by call context rather than by a signature.
func HasContractComponent(key Key) bool {
	switch k := key.(type) {
	case ContractIDKey, DelegatableContractIDKey:
		return true
	case ThresholdKey:
		return anyHasContractComponent(k.Keys)
	case KeyList:
		return anyHasContractComponent(k.Keys)
	}
	return false
}

func anyHasContractComponent(keys []Key) bool {
	for _, key := range keys {
		if HasContractComponent(key) {
			return true
		}
	}
	return false
}

// KeysEqual compares two keys structurally.
func KeysEqual(a, b Key) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case ThresholdKey:
		y, ok := b.(ThresholdKey)
		return ok && x.Threshold == y.Threshold && keySlicesEqual(x.Keys, y.Keys)
	case KeyList:
		y, ok := b.(KeyList)
		return ok && keySlicesEqual(x.Keys, y.Keys)
	}
	return a == b
}

func keySlicesEqual(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !KeysEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
