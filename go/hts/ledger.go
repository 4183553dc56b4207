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

//go:generate mockgen -source ledger.go -destination ledger_mock.go -package hts

// Account is the ledger state of an account. Contracts are accounts with
// IsContract set. Accounts without a key are hollow: they were created from an
// EVM alias and have not yet been claimed by a signing key.
type Account struct {
	ID                   AccountID
	Alias                *Address
	Key                  Key
	Balance              int64 // in tinybars
	ReceiverSigRequired  bool
	MaxAutoAssociations  int
	UsedAutoAssociations int
	NumAssociations      int
	NumNftsOwned         int64
	Memo                 string
	AutoRenewSeconds     int64
	IsContract           bool
	Deleted              bool
}

// IsHollow reports whether the account was lazily created and lacks a key.
func (a *Account) IsHollow() bool {
	return a.Key == nil && a.Alias != nil && !a.IsContract
}

// TokenType distinguishes fungible from non-fungible tokens.
type TokenType int

const (
	FungibleCommon TokenType = iota
	NonFungibleUnique
)

func (t TokenType) String() string {
	switch t {
	case FungibleCommon:
		return "fungible_common"
	case NonFungibleUnique:
		return "non_fungible_unique"
	default:
		return "unknown"
	}
}

// SupplyType determines whether a token's total supply is bounded.
type SupplyType int

const (
	Infinite SupplyType = iota
	Finite
)

// Token is the ledger state of a token.
type Token struct {
	ID            TokenID
	Type          TokenType
	Name          string
	Symbol        string
	Decimals      int32
	TotalSupply   int64
	MaxSupply     int64
	SupplyType    SupplyType
	Treasury      AccountID
	AdminKey      Key
	SupplyKey     Key
	FreezeKey     Key
	KycKey        Key
	WipeKey       Key
	PauseKey      Key
	FreezeDefault bool
	CustomFees    []CustomFee
	LastSerial    int64
	Deleted       bool
	Paused        bool
}

// Relationship links an account to a token. For non-fungible tokens the
// balance counts the serials owned by the account.
type Relationship struct {
	Account    AccountID
	Token      TokenID
	Balance    int64
	Frozen     bool
	KycGranted bool
	Automatic  bool
}

// Nft is a single serial of a non-fungible token. A zero Spender means no
// serial-level approval is granted.
type Nft struct {
	ID       NftID
	Owner    AccountID
	Spender  AccountID
	Metadata []byte
}

// LedgerView provides read access to a consistent snapshot of the ledger.
type LedgerView interface {
	// GetAccount returns the account with the given ID, if it exists.
	GetAccount(id AccountID) (Account, bool)
	// ResolveAlias returns the account bound to the given non-mirror address.
	ResolveAlias(alias Address) (AccountID, bool)
	GetToken(id TokenID) (Token, bool)
	GetRelationship(account AccountID, token TokenID) (Relationship, bool)
	GetNft(id NftID) (Nft, bool)
	// GetAllowance returns the remaining fungible (or HBAR, for token 0)
	// allowance granted by the owner to the spender. Absent allowances are 0.
	GetAllowance(owner, spender AccountID, token TokenID) int64
	IsApprovedForAll(owner, operator AccountID, token TokenID) bool
	// NextEntityNum is the entity number the next created entity receives.
	NextEntityNum() uint64
}

// LedgerWriter provides point updates of ledger entries. Writing an account
// registers its alias and advances the entity numbering past its ID.
type LedgerWriter interface {
	PutAccount(Account)
	PutToken(Token)
	PutRelationship(Relationship)
	DeleteRelationship(account AccountID, token TokenID)
	PutNft(Nft)
	DeleteNft(id NftID)
	SetAllowance(owner, spender AccountID, token TokenID, amount int64)
	SetApprovalForAll(owner, operator AccountID, token TokenID, approved bool)
}

// Ledger is a readable and writable ledger.
type Ledger interface {
	LedgerView
	LedgerWriter
}
