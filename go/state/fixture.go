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
	"encoding/json"
	"fmt"
	"io"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Fixture is the JSON representation of a ledger.
type Fixture struct {
	Accounts      []FixtureAccount      `json:"accounts,omitempty"`
	Tokens        []FixtureToken        `json:"tokens,omitempty"`
	Relationships []FixtureRelationship `json:"relationships,omitempty"`
	Nfts          []FixtureNft          `json:"nfts,omitempty"`
	Allowances    []Allowance           `json:"allowances,omitempty"`
	Operators     []Operator            `json:"operators,omitempty"`
}

type FixtureAccount struct {
	ID                  hts.AccountID `json:"id"`
	Alias               *hts.Address  `json:"alias,omitempty"`
	Key                 *FixtureKey   `json:"key,omitempty"`
	Balance             int64         `json:"balance,omitempty"`
	ReceiverSigRequired bool          `json:"receiverSigRequired,omitempty"`
	MaxAutoAssociations int           `json:"maxAutoAssociations,omitempty"`
	Memo                string        `json:"memo,omitempty"`
	AutoRenewSeconds    int64         `json:"autoRenewSeconds,omitempty"`
	IsContract          bool          `json:"contract,omitempty"`
}

type FixtureToken struct {
	ID            hts.TokenID        `json:"id"`
	NonFungible   bool               `json:"nonFungible,omitempty"`
	Name          string             `json:"name,omitempty"`
	Symbol        string             `json:"symbol,omitempty"`
	Decimals      int32              `json:"decimals,omitempty"`
	TotalSupply   int64              `json:"totalSupply,omitempty"`
	MaxSupply     int64              `json:"maxSupply,omitempty"`
	Treasury      hts.AccountID      `json:"treasury"`
	AdminKey      *FixtureKey        `json:"adminKey,omitempty"`
	SupplyKey     *FixtureKey        `json:"supplyKey,omitempty"`
	FreezeKey     *FixtureKey        `json:"freezeKey,omitempty"`
	KycKey        *FixtureKey        `json:"kycKey,omitempty"`
	WipeKey       *FixtureKey        `json:"wipeKey,omitempty"`
	PauseKey      *FixtureKey        `json:"pauseKey,omitempty"`
	FreezeDefault bool               `json:"freezeDefault,omitempty"`
	CustomFees    []FixtureCustomFee `json:"customFees,omitempty"`
	LastSerial    int64              `json:"lastSerial,omitempty"`
	Paused        bool               `json:"paused,omitempty"`
	Deleted       bool               `json:"deleted,omitempty"`
}

type FixtureRelationship struct {
	Account    hts.AccountID `json:"account"`
	Token      hts.TokenID   `json:"token"`
	Balance    int64         `json:"balance,omitempty"`
	Frozen     bool          `json:"frozen,omitempty"`
	KycGranted bool          `json:"kycGranted,omitempty"`
}

type FixtureNft struct {
	Token    hts.TokenID   `json:"token"`
	Serial   int64         `json:"serial"`
	Owner    hts.AccountID `json:"owner"`
	Spender  hts.AccountID `json:"spender,omitempty"`
	Metadata hexutil.Bytes `json:"metadata,omitempty"`
}

// FixtureKey is the JSON representation of a key. Exactly one of its fields
// is set.
type FixtureKey struct {
	Ed25519             hexutil.Bytes  `json:"ed25519,omitempty"`
	Secp256k1           hexutil.Bytes  `json:"secp256k1,omitempty"`
	Contract            *hts.AccountID `json:"contract,omitempty"`
	DelegatableContract *hts.AccountID `json:"delegatableContract,omitempty"`
	Threshold           *int           `json:"threshold,omitempty"`
	Keys                []FixtureKey   `json:"keys,omitempty"`
	List                []FixtureKey   `json:"list,omitempty"`
}

type FixtureCustomFee struct {
	Fixed      *FixtureFixedFee   `json:"fixed,omitempty"`
	Fractional *hts.FractionalFee `json:"fractional,omitempty"`
	Royalty    *FixtureRoyaltyFee `json:"royalty,omitempty"`
}

type FixtureFixedFee struct {
	Amount    int64         `json:"amount"`
	Token     hts.TokenID   `json:"token,omitempty"`
	Collector hts.AccountID `json:"collector"`
}

type FixtureRoyaltyFee struct {
	Numerator   int64            `json:"numerator"`
	Denominator int64            `json:"denominator"`
	Fallback    *FixtureFixedFee `json:"fallback,omitempty"`
	Collector   hts.AccountID    `json:"collector"`
}

// ReadFixture parses a JSON fixture and builds the ledger it describes.
func ReadFixture(reader io.Reader) (*Ledger, error) {
	var fixture Fixture
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return fixture.Build()
}

// Build creates a ledger holding the entries of the fixture. Association and
// NFT ownership counters of accounts are derived from the entries.
func (f *Fixture) Build() (*Ledger, error) {
	ledger := NewLedger()
	for _, a := range f.Accounts {
		key, err := a.Key.toKey()
		if err != nil {
			return nil, fmt.Errorf("account %v: %w", a.ID, err)
		}
		ledger.PutAccount(hts.Account{
			ID:                  a.ID,
			Alias:               a.Alias,
			Key:                 key,
			Balance:             a.Balance,
			ReceiverSigRequired: a.ReceiverSigRequired,
			MaxAutoAssociations: a.MaxAutoAssociations,
			Memo:                a.Memo,
			AutoRenewSeconds:    a.AutoRenewSeconds,
			IsContract:          a.IsContract,
		})
	}
	for _, t := range f.Tokens {
		token, err := t.toToken()
		if err != nil {
			return nil, fmt.Errorf("token %v: %w", t.ID, err)
		}
		ledger.PutToken(token)
	}
	for _, r := range f.Relationships {
		account, found := ledger.GetAccount(r.Account)
		if !found {
			return nil, fmt.Errorf("relationship of unknown account %v", r.Account)
		}
		if _, found := ledger.GetToken(r.Token); !found {
			return nil, fmt.Errorf("relationship with unknown token %v", r.Token)
		}
		account.NumAssociations++
		ledger.PutAccount(account)
		ledger.PutRelationship(hts.Relationship{
			Account:    r.Account,
			Token:      r.Token,
			Balance:    r.Balance,
			Frozen:     r.Frozen,
			KycGranted: r.KycGranted,
		})
	}
	for _, n := range f.Nfts {
		account, found := ledger.GetAccount(n.Owner)
		if !found {
			return nil, fmt.Errorf("nft owned by unknown account %v", n.Owner)
		}
		account.NumNftsOwned++
		ledger.PutAccount(account)
		ledger.PutNft(hts.Nft{
			ID:       hts.NftID{Token: n.Token, Serial: n.Serial},
			Owner:    n.Owner,
			Spender:  n.Spender,
			Metadata: n.Metadata,
		})
	}
	for _, a := range f.Allowances {
		ledger.SetAllowance(a.Owner, a.Spender, a.Token, a.Amount)
	}
	for _, o := range f.Operators {
		ledger.SetApprovalForAll(o.Owner, o.Operator, o.Token, true)
	}
	return ledger, nil
}

func (t *FixtureToken) toToken() (hts.Token, error) {
	token := hts.Token{
		ID:            t.ID,
		Name:          t.Name,
		Symbol:        t.Symbol,
		Decimals:      t.Decimals,
		TotalSupply:   t.TotalSupply,
		MaxSupply:     t.MaxSupply,
		Treasury:      t.Treasury,
		FreezeDefault: t.FreezeDefault,
		LastSerial:    t.LastSerial,
		Paused:        t.Paused,
		Deleted:       t.Deleted,
	}
	if t.NonFungible {
		token.Type = hts.NonFungibleUnique
	}
	if t.MaxSupply > 0 {
		token.SupplyType = hts.Finite
	}
	var err error
	for _, k := range []struct {
		src *FixtureKey
		trg *hts.Key
	}{
		{t.AdminKey, &token.AdminKey},
		{t.SupplyKey, &token.SupplyKey},
		{t.FreezeKey, &token.FreezeKey},
		{t.KycKey, &token.KycKey},
		{t.WipeKey, &token.WipeKey},
		{t.PauseKey, &token.PauseKey},
	} {
		if *k.trg, err = k.src.toKey(); err != nil {
			return hts.Token{}, err
		}
	}
	for _, fee := range t.CustomFees {
		switch {
		case fee.Fixed != nil:
			token.CustomFees = append(token.CustomFees, fee.Fixed.toFee())
		case fee.Fractional != nil:
			token.CustomFees = append(token.CustomFees, *fee.Fractional)
		case fee.Royalty != nil:
			royalty := hts.RoyaltyFee{
				Numerator:   fee.Royalty.Numerator,
				Denominator: fee.Royalty.Denominator,
				Collector:   fee.Royalty.Collector,
			}
			if fee.Royalty.Fallback != nil {
				fallback := fee.Royalty.Fallback.toFee()
				royalty.Fallback = &fallback
			}
			token.CustomFees = append(token.CustomFees, royalty)
		default:
			return hts.Token{}, fmt.Errorf("empty custom fee")
		}
	}
	return token, nil
}

func (f *FixtureFixedFee) toFee() hts.FixedFee {
	return hts.FixedFee{Amount: f.Amount, DenominatingToken: f.Token, Collector: f.Collector}
}

// Key converts the JSON representation into a key. A nil fixture key yields
// a nil key.
func (k *FixtureKey) Key() (hts.Key, error) {
	return k.toKey()
}

func (k *FixtureKey) toKey() (hts.Key, error) {
	if k == nil {
		return nil, nil
	}
	switch {
	case len(k.Ed25519) > 0:
		var key hts.Ed25519Key
		if len(k.Ed25519) != len(key) {
			return nil, fmt.Errorf("invalid ed25519 key length %d", len(k.Ed25519))
		}
		copy(key[:], k.Ed25519)
		return key, nil
	case len(k.Secp256k1) > 0:
		var key hts.Secp256k1Key
		if len(k.Secp256k1) != len(key) {
			return nil, fmt.Errorf("invalid secp256k1 key length %d", len(k.Secp256k1))
		}
		copy(key[:], k.Secp256k1)
		return key, nil
	case k.Contract != nil:
		return hts.ContractIDKey{Contract: *k.Contract}, nil
	case k.DelegatableContract != nil:
		return hts.DelegatableContractIDKey{Contract: *k.DelegatableContract}, nil
	case k.Threshold != nil:
		keys, err := toKeys(k.Keys)
		if err != nil {
			return nil, err
		}
		return hts.ThresholdKey{Threshold: *k.Threshold, Keys: keys}, nil
	case k.List != nil:
		keys, err := toKeys(k.List)
		if err != nil {
			return nil, err
		}
		return hts.KeyList{Keys: keys}, nil
	}
	return nil, fmt.Errorf("empty key")
}

func toKeys(keys []FixtureKey) ([]hts.Key, error) {
	res := make([]hts.Key, 0, len(keys))
	for i := range keys {
		key, err := keys[i].toKey()
		if err != nil {
			return nil, err
		}
		res = append(res, key)
	}
	return res, nil
}

// NewFixtureKey converts a key into its JSON representation.
func NewFixtureKey(key hts.Key) *FixtureKey {
	switch k := key.(type) {
	case hts.Ed25519Key:
		return &FixtureKey{Ed25519: k[:]}
	case hts.Secp256k1Key:
		return &FixtureKey{Secp256k1: k[:]}
	case hts.ContractIDKey:
		return &FixtureKey{Contract: &k.Contract}
	case hts.DelegatableContractIDKey:
		return &FixtureKey{DelegatableContract: &k.Contract}
	case hts.ThresholdKey:
		return &FixtureKey{Threshold: &k.Threshold, Keys: fromKeys(k.Keys)}
	case hts.KeyList:
		return &FixtureKey{List: fromKeys(k.Keys)}
	}
	return nil
}

func fromKeys(keys []hts.Key) []FixtureKey {
	res := make([]FixtureKey, 0, len(keys))
	for _, key := range keys {
		if converted := NewFixtureKey(key); converted != nil {
			res = append(res, *converted)
		}
	}
	return res
}
