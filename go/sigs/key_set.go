// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sigs

import "github.com/Fantom-foundation/tokenservice/go/hts"

// KeySet is a verifier treating a fixed set of simple keys as signed. Tests
// use it where no signing material is at hand.
type KeySet struct {
	keys map[hts.Key]struct{}
}

func NewKeySet(keys ...hts.Key) *KeySet {
	res := &KeySet{keys: map[hts.Key]struct{}{}}
	for _, key := range keys {
		if hts.IsSimple(key) {
			res.keys[key] = struct{}{}
		}
	}
	return res
}

func (s *KeySet) IsActive(key hts.Key) bool {
	if !hts.IsSimple(key) {
		return false
	}
	_, found := s.keys[key]
	return found
}
