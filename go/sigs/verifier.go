// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sigs verifies the signatures attached to a transaction against the
// simple keys referenced by ledger entities.
package sigs

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
)

// Scheme identifies the signature algorithm of a signature pair.
type Scheme int

const (
	Ed25519 Scheme = iota
	EcdsaSecp256k1
)

func (s Scheme) String() string {
	switch s {
	case Ed25519:
		return "ed25519"
	case EcdsaSecp256k1:
		return "ecdsa_secp256k1"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func (s Scheme) MarshalText() ([]byte, error) {
	switch s {
	case Ed25519, EcdsaSecp256k1:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid signature scheme: %v", s)
}

func (s *Scheme) UnmarshalText(data []byte) error {
	switch strings.ToLower(string(data)) {
	case "ed25519":
		*s = Ed25519
	case "ecdsa_secp256k1":
		*s = EcdsaSecp256k1
	default:
		return fmt.Errorf("invalid signature scheme: %s", data)
	}
	return nil
}

// SignaturePair is a signature over a transaction body together with a prefix
// of the public key it was created with. Only pairs whose prefix is the full
// public key are considered by the verifier.
type SignaturePair struct {
	Scheme       Scheme
	PubKeyPrefix []byte
	Signature    []byte
}

// DefaultCacheSize is the number of verification results retained by a cache
// created with a non-positive size.
const DefaultCacheSize = 1 << 14

// Cache retains signature verification results across transactions. A cache
// may be shared by any number of verifiers.
type Cache struct {
	results *lru.Cache[hts.Hash, bool]
}

// NewCache creates a verification cache holding up to size results.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	results, err := lru.New[hts.Hash, bool](size)
	if err != nil {
		return nil, err
	}
	return &Cache{results: results}, nil
}

// Verifier implements hts.SignatureVerifier for the signatures of a single
// transaction body.
type Verifier struct {
	body     []byte
	bodyHash hts.Hash
	pairs    []SignaturePair
	cache    *Cache
}

// NewVerifier creates a verifier for the given body and signatures. The cache
// is optional.
func NewVerifier(body []byte, pairs []SignaturePair, cache *Cache) *Verifier {
	return &Verifier{
		body:     bytes.Clone(body),
		bodyHash: keccak256(body),
		pairs:    pairs,
		cache:    cache,
	}
}

// BodyHash returns the keccak256 hash of the signed body.
func (v *Verifier) BodyHash() hts.Hash {
	return v.bodyHash
}

// IsActive reports whether the transaction carries a valid full-prefix
// signature for the given simple key. Complex keys are never active on their
// own; they are evaluated component-wise by the caller.
func (v *Verifier) IsActive(key hts.Key) bool {
	var scheme Scheme
	var pub []byte
	switch k := key.(type) {
	case hts.Ed25519Key:
		scheme, pub = Ed25519, k[:]
	case hts.Secp256k1Key:
		scheme, pub = EcdsaSecp256k1, k[:]
	default:
		return false
	}
	for _, pair := range v.pairs {
		if pair.Scheme != scheme || !bytes.Equal(pair.PubKeyPrefix, pub) {
			continue
		}
		if v.verify(scheme, pub, pair.Signature) {
			return true
		}
	}
	return false
}

func (v *Verifier) verify(scheme Scheme, pub, signature []byte) bool {
	if v.cache == nil {
		return verify(scheme, pub, signature, v.body, v.bodyHash)
	}
	id := keccak256([]byte{byte(scheme)}, pub, signature, v.bodyHash[:])
	if valid, found := v.cache.results.Get(id); found {
		return valid
	}
	valid := verify(scheme, pub, signature, v.body, v.bodyHash)
	v.cache.results.Add(id, valid)
	return valid
}

func verify(scheme Scheme, pub, signature, body []byte, bodyHash hts.Hash) bool {
	switch scheme {
	case Ed25519:
		return len(pub) == ed25519.PublicKeySize && ed25519.Verify(pub, body, signature)
	case EcdsaSecp256k1:
		// Signatures carry an optional recovery id which is not needed here.
		if len(signature) == crypto.SignatureLength {
			signature = signature[:crypto.RecoveryIDOffset]
		}
		return crypto.VerifySignature(pub, bodyHash[:], signature)
	}
	return false
}

// SignEd25519 signs the body with the given ED25519 key.
func SignEd25519(key ed25519.PrivateKey, body []byte) SignaturePair {
	return SignaturePair{
		Scheme:       Ed25519,
		PubKeyPrefix: bytes.Clone(key.Public().(ed25519.PublicKey)),
		Signature:    ed25519.Sign(key, body),
	}
}

// SignSecp256k1 signs the keccak256 hash of the body with the given ECDSA key.
func SignSecp256k1(key *ecdsa.PrivateKey, body []byte) (SignaturePair, error) {
	hash := keccak256(body)
	signature, err := crypto.Sign(hash[:], key)
	if err != nil {
		return SignaturePair{}, err
	}
	return SignaturePair{
		Scheme:       EcdsaSecp256k1,
		PubKeyPrefix: crypto.CompressPubkey(&key.PublicKey),
		Signature:    signature,
	}, nil
}

// Ed25519KeyOf returns the ledger key of an ED25519 private key.
func Ed25519KeyOf(key ed25519.PrivateKey) hts.Ed25519Key {
	var res hts.Ed25519Key
	copy(res[:], key.Public().(ed25519.PublicKey))
	return res
}

// Secp256k1KeyOf returns the ledger key of an ECDSA private key.
func Secp256k1KeyOf(key *ecdsa.PrivateKey) hts.Secp256k1Key {
	var res hts.Secp256k1Key
	copy(res[:], crypto.CompressPubkey(&key.PublicKey))
	return res
}

func keccak256(data ...[]byte) hts.Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, cur := range data {
		hasher.Write(cur)
	}
	var res hts.Hash
	hasher.Sum(res[:0])
	return res
}
