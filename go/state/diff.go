// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

// Equal reports whether two ledgers hold the same entries.
func (l *Ledger) Equal(other *Ledger) bool {
	return len(l.Diff(other)) == 0
}

// Diff lists the differences between two ledgers in a deterministic order.
func (l *Ledger) Diff(other *Ledger) []string {
	var res []string
	res = append(res, diffMaps("accounts/", l.accounts, other.accounts, func(a, b hts.Account) bool {
		return reflect.DeepEqual(a, b)
	})...)
	res = append(res, diffMaps("tokens/", l.tokens, other.tokens, func(a, b hts.Token) bool {
		return reflect.DeepEqual(a, b)
	})...)
	res = append(res, diffMaps("relationships/", l.relationships, other.relationships, func(a, b hts.Relationship) bool {
		return a == b
	})...)
	res = append(res, diffMaps("nfts/", l.nfts, other.nfts, func(a, b hts.Nft) bool {
		return a.ID == b.ID && a.Owner == b.Owner && a.Spender == b.Spender && bytes.Equal(a.Metadata, b.Metadata)
	})...)
	res = append(res, diffMaps("allowances/", l.allowances, other.allowances, func(a, b int64) bool {
		return a == b
	})...)
	res = append(res, diffMaps("operators/", l.operators, other.operators, func(a, b bool) bool {
		return a == b
	})...)
	if l.nextEntityNum != other.nextEntityNum {
		res = append(res, fmt.Sprintf("different next entity number: %d != %d", l.nextEntityNum, other.nextEntityNum))
	}
	return res
}

// diffMaps compares two maps and returns a sorted list of differences.
func diffMaps[K comparable, V any](prefix string, a, b map[K]V, equal func(V, V) bool) []string {
	var diffs []string
	for k, v := range a {
		w, found := b[k]
		if !found {
			diffs = append(diffs, fmt.Sprintf("%s%v: missing, was %+v", prefix, k, v))
			continue
		}
		if !equal(v, w) {
			diffs = append(diffs, fmt.Sprintf("%s%v: %+v != %+v", prefix, k, v, w))
		}
	}
	for k, w := range b {
		if _, found := a[k]; !found {
			diffs = append(diffs, fmt.Sprintf("%s%v: unexpected %+v", prefix, k, w))
		}
	}
	slices.Sort(diffs)
	return diffs
}

func (k relationshipKey) String() string {
	return fmt.Sprintf("%v/%v", k.account, k.token)
}

func (k allowanceKey) String() string {
	return fmt.Sprintf("%v->%v/%v", k.owner, k.spender, k.token)
}
