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

import "testing"

func TestCallFrame_ChainProperties(t *testing.T) {
	eoa := Address{0xee}
	c := MirrorAddress(1001)
	i := MirrorAddress(1002)

	root := NewCallFrame(nil, Call, eoa, c, c)
	delegate := NewCallFrame(root, DelegateCall, eoa, c, i)
	precompile := NewCallFrame(delegate, Call, c, PrecompileAddress, PrecompileAddress)

	if want, got := 2, precompile.Depth(); want != got {
		t.Errorf("unexpected depth, wanted %d, got %d", want, got)
	}
	if want, got := eoa, precompile.Origin(); want != got {
		t.Errorf("unexpected origin, wanted %v, got %v", want, got)
	}
	if root.IsDelegated() || !delegate.IsDelegated() || precompile.IsDelegated() {
		t.Errorf("unexpected delegation flags")
	}
	if precompile.IsStatic() {
		t.Errorf("chain without static hops must not be static")
	}
}

func TestCallFrame_StaticIsInherited(t *testing.T) {
	c := MirrorAddress(1001)
	root := NewCallFrame(nil, StaticCall, Address{1}, c, c)
	inner := NewCallFrame(root, Call, c, PrecompileAddress, PrecompileAddress)
	if !inner.IsStatic() {
		t.Errorf("static hop in an enclosing frame must make inner frames static")
	}
}

func TestAddress_MirrorConversion(t *testing.T) {
	addr := MirrorAddress(0x167)
	if !addr.IsMirror() {
		t.Errorf("mirror address not recognized")
	}
	if want, got := uint64(0x167), addr.EntityNum(); want != got {
		t.Errorf("unexpected entity number, wanted %d, got %d", want, got)
	}
	alias := Address{0xab, 0xcd}
	if alias.IsMirror() {
		t.Errorf("alias must not be considered a mirror address")
	}
}

func TestCallKind_JSONEncoding(t *testing.T) {
	for _, kind := range []CallKind{Call, DelegateCall, StaticCall, CallCode} {
		data, err := kind.MarshalJSON()
		if err != nil {
			t.Fatalf("failed to encode %v: %v", kind, err)
		}
		var restored CallKind
		if err := restored.UnmarshalJSON(data); err != nil {
			t.Fatalf("failed to decode %s: %v", data, err)
		}
		if kind != restored {
			t.Errorf("unexpected kind, wanted %v, got %v", kind, restored)
		}
	}
	if _, err := CallKind(42).MarshalJSON(); err == nil {
		t.Errorf("encoding an invalid kind should fail")
	}
}
