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

import "fmt"

// OperationKind enumerates the native operations reachable through the
// token service precompile.
type OperationKind int

const (
	OpUnknown OperationKind = iota
	OpAssociate
	OpDissociate
	OpMint
	OpBurn
	OpTransferFungible
	OpTransferNFT
	OpTransferBatch
	OpApprove
	OpApproveNFT
	OpApproveForAll
	OpTransferFrom
	OpTransferFromNFT
	OpFreeze
	OpUnfreeze
	OpGrantKyc
	OpRevokeKyc
	OpWipe
	OpWipeNFT
	OpPause
	OpUnpause
	OpDelete
	OpLazyCreate
	OpName
	OpSymbol
	OpDecimals
	OpTotalSupply
	OpBalanceOf
	OpOwnerOf
	OpTokenURI
	OpAllowance
	OpGetApproved
	OpIsApprovedForAll
	OpIsAssociated
	OpIsFrozen
	OpIsKyc
	OpIsToken
	OpGetTokenType
	numOperationKinds
)

var operationKindNames = [numOperationKinds]string{
	OpUnknown:          "unknown",
	OpAssociate:        "associate",
	OpDissociate:       "dissociate",
	OpMint:             "mint",
	OpBurn:             "burn",
	OpTransferFungible: "transfer_fungible",
	OpTransferNFT:      "transfer_nft",
	OpTransferBatch:    "transfer_batch",
	OpApprove:          "approve",
	OpApproveNFT:       "approve_nft",
	OpApproveForAll:    "approve_for_all",
	OpTransferFrom:     "transfer_from",
	OpTransferFromNFT:  "transfer_from_nft",
	OpFreeze:           "freeze",
	OpUnfreeze:         "unfreeze",
	OpGrantKyc:         "grant_kyc",
	OpRevokeKyc:        "revoke_kyc",
	OpWipe:             "wipe",
	OpWipeNFT:          "wipe_nft",
	OpPause:            "pause",
	OpUnpause:          "unpause",
	OpDelete:           "delete",
	OpLazyCreate:       "lazy_create",
	OpName:             "name",
	OpSymbol:           "symbol",
	OpDecimals:         "decimals",
	OpTotalSupply:      "total_supply",
	OpBalanceOf:        "balance_of",
	OpOwnerOf:          "owner_of",
	OpTokenURI:         "token_uri",
	OpAllowance:        "allowance",
	OpGetApproved:      "get_approved",
	OpIsApprovedForAll: "is_approved_for_all",
	OpIsAssociated:     "is_associated",
	OpIsFrozen:         "is_frozen",
	OpIsKyc:            "is_kyc",
	OpIsToken:          "is_token",
	OpGetTokenType:     "get_token_type",
}

func (k OperationKind) String() string {
	if k < 0 || k >= numOperationKinds {
		return fmt.Sprintf("op(%d)", int(k))
	}
	return operationKindNames[k]
}

// IsView reports whether operations of this kind only read the ledger.
func (k OperationKind) IsView() bool {
	return k >= OpName && k < numOperationKinds
}

func (k OperationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OperationKind) UnmarshalText(data []byte) error {
	for i, name := range operationKindNames {
		if name == string(data) {
			*k = OperationKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown operation kind: %s", data)
}

// TokenTransfer is a fungible balance adjustment listed on a record.
type TokenTransfer struct {
	Token      TokenID
	Account    AccountID
	Amount     int64
	IsApproval bool
}

// NftTransfer is a change of ownership of a serial listed on a record.
type NftTransfer struct {
	Token      TokenID
	Sender     AccountID
	Receiver   AccountID
	Serial     int64
	IsApproval bool
}

// HbarTransfer is an HBAR balance adjustment listed on a record.
type HbarTransfer struct {
	Account AccountID
	Amount  int64
}

// AssessedCustomFee describes a custom fee charged by an operation. A zero
// Token means the fee was paid in HBAR.
type AssessedCustomFee struct {
	Token     TokenID
	Collector AccountID
	Amount    int64
	Payers    []AccountID
}

// ChildRecord is the log entry produced for each dispatched native operation.
// Records are never mutated after creation, except that a successful record
// whose effects were discarded reports RevertedSuccess.
type ChildRecord struct {
	Kind                OperationKind
	Status              Status
	Token               TokenID
	NewTotalSupply      int64
	SerialNumbers       []int64
	TokenTransfers      []TokenTransfer
	NftTransfers        []NftTransfer
	HbarTransfers       []HbarTransfer
	AssessedCustomFees  []AssessedCustomFee
	AutoCreatedAccounts []AccountID
	Output              Data
	Logs                []Log
}

func (r *ChildRecord) String() string {
	return fmt.Sprintf("%v:%v", r.Kind, r.Status)
}
