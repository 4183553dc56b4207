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

// CallFrame is one level of the EVM call stack. Frames form a singly-linked
// list from the innermost frame to the outermost one; the outermost frame has
// no parent.
type CallFrame struct {
	Kind        CallKind
	Sender      Address
	Recipient   Address // the storage context the code runs in
	CodeAddress Address // the account whose code is executed
	Parent      *CallFrame
}

// NewCallFrame creates a frame nested into parent, which may be nil.
func NewCallFrame(parent *CallFrame, kind CallKind, sender, recipient, code Address) *CallFrame {
	return &CallFrame{
		Kind:        kind,
		Sender:      sender,
		Recipient:   recipient,
		CodeAddress: code,
		Parent:      parent,
	}
}

// Depth is the number of frames enclosing this frame.
func (f *CallFrame) Depth() int {
	depth := 0
	for cur := f.Parent; cur != nil; cur = cur.Parent {
		depth++
	}
	return depth
}

// Origin is the sender of the outermost frame.
func (f *CallFrame) Origin() Address {
	cur := f
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur.Sender
}

// IsDelegated reports whether the frame runs code other than the code of the
// account owning its storage context.
func (f *CallFrame) IsDelegated() bool {
	return f.Recipient != f.CodeAddress
}

// IsStatic reports whether this frame or any enclosing frame was entered
// through a static call.
func (f *CallFrame) IsStatic() bool {
	for cur := f; cur != nil; cur = cur.Parent {
		if cur.Kind == StaticCall {
			return true
		}
	}
	return false
}
