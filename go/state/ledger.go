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
	"cmp"
	"slices"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"golang.org/x/exp/maps"
)

// Ledger is an in-memory implementation of hts.Ledger. It is intended for
// tests, tools and as the committed state behind a transaction overlay.
type Ledger struct {
	accounts      map[hts.AccountID]hts.Account
	aliases       map[hts.Address]hts.AccountID
	tokens        map[hts.TokenID]hts.Token
	relationships map[relationshipKey]hts.Relationship
	nfts          map[hts.NftID]hts.Nft
	allowances    map[allowanceKey]int64
	operators     map[allowanceKey]bool
	nextEntityNum uint64
}

type relationshipKey struct {
	account hts.AccountID
	token   hts.TokenID
}

type allowanceKey struct {
	owner   hts.AccountID
	spender hts.AccountID
	token   hts.TokenID
}

// FirstUserEntityNum is the first entity number assigned by an empty ledger.
const FirstUserEntityNum = 1001

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts:      map[hts.AccountID]hts.Account{},
		aliases:       map[hts.Address]hts.AccountID{},
		tokens:        map[hts.TokenID]hts.Token{},
		relationships: map[relationshipKey]hts.Relationship{},
		nfts:          map[hts.NftID]hts.Nft{},
		allowances:    map[allowanceKey]int64{},
		operators:     map[allowanceKey]bool{},
		nextEntityNum: FirstUserEntityNum,
	}
}

func (l *Ledger) GetAccount(id hts.AccountID) (hts.Account, bool) {
	account, found := l.accounts[id]
	return account, found
}

func (l *Ledger) ResolveAlias(alias hts.Address) (hts.AccountID, bool) {
	id, found := l.aliases[alias]
	return id, found
}

func (l *Ledger) GetToken(id hts.TokenID) (hts.Token, bool) {
	token, found := l.tokens[id]
	return token, found
}

func (l *Ledger) GetRelationship(account hts.AccountID, token hts.TokenID) (hts.Relationship, bool) {
	rel, found := l.relationships[relationshipKey{account, token}]
	return rel, found
}

func (l *Ledger) GetNft(id hts.NftID) (hts.Nft, bool) {
	nft, found := l.nfts[id]
	return nft, found
}

func (l *Ledger) GetAllowance(owner, spender hts.AccountID, token hts.TokenID) int64 {
	return l.allowances[allowanceKey{owner, spender, token}]
}

func (l *Ledger) IsApprovedForAll(owner, operator hts.AccountID, token hts.TokenID) bool {
	return l.operators[allowanceKey{owner, operator, token}]
}

func (l *Ledger) NextEntityNum() uint64 {
	return l.nextEntityNum
}

func (l *Ledger) PutAccount(account hts.Account) {
	l.accounts[account.ID] = account
	if account.Alias != nil {
		l.aliases[*account.Alias] = account.ID
	}
	l.reserve(uint64(account.ID))
}

func (l *Ledger) PutToken(token hts.Token) {
	l.tokens[token.ID] = token
	l.reserve(uint64(token.ID))
}

func (l *Ledger) reserve(num uint64) {
	if num >= l.nextEntityNum {
		l.nextEntityNum = num + 1
	}
}

func (l *Ledger) PutRelationship(rel hts.Relationship) {
	l.relationships[relationshipKey{rel.Account, rel.Token}] = rel
}

func (l *Ledger) DeleteRelationship(account hts.AccountID, token hts.TokenID) {
	delete(l.relationships, relationshipKey{account, token})
}

func (l *Ledger) PutNft(nft hts.Nft) {
	l.nfts[nft.ID] = nft
}

func (l *Ledger) DeleteNft(id hts.NftID) {
	delete(l.nfts, id)
}

func (l *Ledger) SetAllowance(owner, spender hts.AccountID, token hts.TokenID, amount int64) {
	key := allowanceKey{owner, spender, token}
	if amount == 0 {
		delete(l.allowances, key)
		return
	}
	l.allowances[key] = amount
}

func (l *Ledger) SetApprovalForAll(owner, operator hts.AccountID, token hts.TokenID, approved bool) {
	key := allowanceKey{owner, operator, token}
	if !approved {
		delete(l.operators, key)
		return
	}
	l.operators[key] = true
}

// Accounts lists all accounts ordered by ID.
func (l *Ledger) Accounts() []hts.Account {
	return sortedValues(l.accounts, func(a, b hts.Account) int { return cmp.Compare(a.ID, b.ID) })
}

// Tokens lists all tokens ordered by ID.
func (l *Ledger) Tokens() []hts.Token {
	return sortedValues(l.tokens, func(a, b hts.Token) int { return cmp.Compare(a.ID, b.ID) })
}

// Relationships lists all relationships ordered by account and token.
func (l *Ledger) Relationships() []hts.Relationship {
	return sortedValues(l.relationships, func(a, b hts.Relationship) int {
		if c := cmp.Compare(a.Account, b.Account); c != 0 {
			return c
		}
		return cmp.Compare(a.Token, b.Token)
	})
}

// Nfts lists all serials ordered by token and serial number.
func (l *Ledger) Nfts() []hts.Nft {
	return sortedValues(l.nfts, func(a, b hts.Nft) int {
		if c := cmp.Compare(a.ID.Token, b.ID.Token); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Serial, b.ID.Serial)
	})
}

// Allowance is a fungible or HBAR allowance entry.
type Allowance struct {
	Owner   hts.AccountID `json:"owner"`
	Spender hts.AccountID `json:"spender"`
	Token   hts.TokenID   `json:"token,omitempty"`
	Amount  int64         `json:"amount"`
}

// Allowances lists all non-zero allowances in a deterministic order.
func (l *Ledger) Allowances() []Allowance {
	res := make([]Allowance, 0, len(l.allowances))
	for key, amount := range l.allowances {
		res = append(res, Allowance{key.owner, key.spender, key.token, amount})
	}
	slices.SortFunc(res, func(a, b Allowance) int {
		return compareAllowanceKeys(allowanceKey{a.Owner, a.Spender, a.Token}, allowanceKey{b.Owner, b.Spender, b.Token})
	})
	return res
}

// Operator is an approved-for-all grant.
type Operator struct {
	Owner    hts.AccountID `json:"owner"`
	Operator hts.AccountID `json:"operator"`
	Token    hts.TokenID   `json:"token"`
}

// Operators lists all approved-for-all grants in a deterministic order.
func (l *Ledger) Operators() []Operator {
	keys := maps.Keys(l.operators)
	slices.SortFunc(keys, compareAllowanceKeys)
	res := make([]Operator, 0, len(keys))
	for _, key := range keys {
		res = append(res, Operator{key.owner, key.spender, key.token})
	}
	return res
}

func compareAllowanceKeys(a, b allowanceKey) int {
	if c := cmp.Compare(a.owner, b.owner); c != 0 {
		return c
	}
	if c := cmp.Compare(a.spender, b.spender); c != 0 {
		return c
	}
	return cmp.Compare(a.token, b.token)
}

func sortedValues[K comparable, V any](m map[K]V, compare func(a, b V) int) []V {
	res := maps.Values(m)
	slices.SortFunc(res, compare)
	return res
}

// Clone creates an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	res := &Ledger{
		accounts:      make(map[hts.AccountID]hts.Account, len(l.accounts)),
		aliases:       maps.Clone(l.aliases),
		tokens:        make(map[hts.TokenID]hts.Token, len(l.tokens)),
		relationships: maps.Clone(l.relationships),
		nfts:          make(map[hts.NftID]hts.Nft, len(l.nfts)),
		allowances:    maps.Clone(l.allowances),
		operators:     maps.Clone(l.operators),
		nextEntityNum: l.nextEntityNum,
	}
	for id, account := range l.accounts {
		if account.Alias != nil {
			alias := *account.Alias
			account.Alias = &alias
		}
		res.accounts[id] = account
	}
	for id, token := range l.tokens {
		token.CustomFees = slices.Clone(token.CustomFees)
		res.tokens[id] = token
	}
	for id, nft := range l.nfts {
		nft.Metadata = slices.Clone(nft.Metadata)
		res.nfts[id] = nft
	}
	return res
}
