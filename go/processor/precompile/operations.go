// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompile

import (
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Operation is a decoded precompile call. The set of operations is closed;
// every call accepted by Route is represented by one of the types below.
type Operation interface {
	Kind() hts.OperationKind
	origin() call
}

// call is the ABI method an operation was decoded from.
type call struct {
	method *abi.Method
	// facade marks calls of the ERC token facade, which revert on failure
	// instead of reporting a response code.
	facade bool
}

func (c call) origin() call {
	return c
}

// AccountAmount is a fungible or HBAR balance change of a single account.
type AccountAmount struct {
	Account    hts.Address
	Amount     int64
	IsApproval bool
}

// NftExchange moves a single serial between two accounts.
type NftExchange struct {
	Sender     hts.Address
	Receiver   hts.Address
	Serial     int64
	IsApproval bool
}

// TokenTransferList lists the changes of a single token within a batch.
type TokenTransferList struct {
	Token   hts.Address
	Changes []AccountAmount
	Moves   []NftExchange
}

type Associate struct {
	call
	Account hts.Address
	Tokens  []hts.Address
	// OfCaller is set if the account is the calling contract.
	OfCaller bool
}

type Dissociate struct {
	call
	Account  hts.Address
	Tokens   []hts.Address
	OfCaller bool
}

type Mint struct {
	call
	Token    hts.Address
	Amount   int64
	Metadata [][]byte
}

type Burn struct {
	call
	Token   hts.Address
	Amount  int64
	Serials []int64
}

type TransferFungible struct {
	call
	Token   hts.Address
	Changes []AccountAmount
	// FromCaller is set for the ERC-20 transfer. Changes then only lists
	// the credit, the matching debit is charged to the caller.
	FromCaller bool
}

type TransferNFT struct {
	call
	Token hts.Address
	Moves []NftExchange
}

type TransferBatch struct {
	call
	Hbar   []AccountAmount
	Tokens []TokenTransferList
}

type Approve struct {
	call
	Token   hts.Address
	Spender hts.Address
	Amount  int64
}

type ApproveNFT struct {
	call
	Token   hts.Address
	Spender hts.Address
	Serial  int64
}

type ApproveForAll struct {
	call
	Token    hts.Address
	Operator hts.Address
	Approved bool
}

type TransferFrom struct {
	call
	Token  hts.Address
	From   hts.Address
	To     hts.Address
	Amount int64
}

type TransferFromNFT struct {
	call
	Token  hts.Address
	From   hts.Address
	To     hts.Address
	Serial int64
}

// ErcTransferFrom is the ERC transferFrom shared by ERC-20 and ERC-721. Its
// last argument is an amount or a serial depending on the token type.
type ErcTransferFrom struct {
	call
	Token hts.Address
	From  hts.Address
	To    hts.Address
	Value int64
}

// ErcApprove is the ERC approve shared by ERC-20 and ERC-721.
type ErcApprove struct {
	call
	Token   hts.Address
	Spender hts.Address
	Value   int64
}

type Freeze struct {
	call
	Token   hts.Address
	Account hts.Address
}

type Unfreeze struct {
	call
	Token   hts.Address
	Account hts.Address
}

type GrantKyc struct {
	call
	Token   hts.Address
	Account hts.Address
}

type RevokeKyc struct {
	call
	Token   hts.Address
	Account hts.Address
}

// WipeFungible removes an amount of a fungible token from an account and
// the total supply.
type WipeFungible struct {
	call
	Token   hts.Address
	Account hts.Address
	Amount  int64
}

// WipeNFT burns serials owned by an account other than the treasury.
type WipeNFT struct {
	call
	Token   hts.Address
	Account hts.Address
	Serials []int64
}

type Pause struct {
	call
	Token hts.Address
}

type Unpause struct {
	call
	Token hts.Address
}

type Delete struct {
	call
	Token hts.Address
}

// --- reads ---

type Name struct {
	call
	Token hts.Address
}

type Symbol struct {
	call
	Token hts.Address
}

type Decimals struct {
	call
	Token hts.Address
}

type TotalSupply struct {
	call
	Token hts.Address
}

type BalanceOf struct {
	call
	Token   hts.Address
	Account hts.Address
}

type OwnerOf struct {
	call
	Token  hts.Address
	Serial int64
}

type TokenURI struct {
	call
	Token  hts.Address
	Serial int64
}

type Allowance struct {
	call
	Token   hts.Address
	Owner   hts.Address
	Spender hts.Address
}

type GetApproved struct {
	call
	Token  hts.Address
	Serial int64
}

type IsApprovedForAll struct {
	call
	Token    hts.Address
	Owner    hts.Address
	Operator hts.Address
}

// IsAssociated reports whether the calling contract is associated with the
// token.
type IsAssociated struct {
	call
	Token hts.Address
}

type IsFrozen struct {
	call
	Token   hts.Address
	Account hts.Address
}

type IsKyc struct {
	call
	Token   hts.Address
	Account hts.Address
}

type IsToken struct {
	call
	Token hts.Address
}

type GetTokenType struct {
	call
	Token hts.Address
}

func (Associate) Kind() hts.OperationKind        { return hts.OpAssociate }
func (Dissociate) Kind() hts.OperationKind       { return hts.OpDissociate }
func (Mint) Kind() hts.OperationKind             { return hts.OpMint }
func (Burn) Kind() hts.OperationKind             { return hts.OpBurn }
func (TransferFungible) Kind() hts.OperationKind { return hts.OpTransferFungible }
func (TransferNFT) Kind() hts.OperationKind      { return hts.OpTransferNFT }
func (TransferBatch) Kind() hts.OperationKind    { return hts.OpTransferBatch }
func (Approve) Kind() hts.OperationKind          { return hts.OpApprove }
func (ApproveNFT) Kind() hts.OperationKind       { return hts.OpApproveNFT }
func (ApproveForAll) Kind() hts.OperationKind    { return hts.OpApproveForAll }
func (TransferFrom) Kind() hts.OperationKind     { return hts.OpTransferFrom }
func (TransferFromNFT) Kind() hts.OperationKind  { return hts.OpTransferFromNFT }
func (ErcTransferFrom) Kind() hts.OperationKind  { return hts.OpTransferFrom }
func (ErcApprove) Kind() hts.OperationKind       { return hts.OpApprove }
func (Freeze) Kind() hts.OperationKind           { return hts.OpFreeze }
func (Unfreeze) Kind() hts.OperationKind         { return hts.OpUnfreeze }
func (GrantKyc) Kind() hts.OperationKind         { return hts.OpGrantKyc }
func (RevokeKyc) Kind() hts.OperationKind        { return hts.OpRevokeKyc }
func (WipeFungible) Kind() hts.OperationKind     { return hts.OpWipe }
func (WipeNFT) Kind() hts.OperationKind          { return hts.OpWipeNFT }
func (Pause) Kind() hts.OperationKind            { return hts.OpPause }
func (Unpause) Kind() hts.OperationKind          { return hts.OpUnpause }
func (Delete) Kind() hts.OperationKind           { return hts.OpDelete }
func (Name) Kind() hts.OperationKind             { return hts.OpName }
func (Symbol) Kind() hts.OperationKind           { return hts.OpSymbol }
func (Decimals) Kind() hts.OperationKind         { return hts.OpDecimals }
func (TotalSupply) Kind() hts.OperationKind      { return hts.OpTotalSupply }
func (BalanceOf) Kind() hts.OperationKind        { return hts.OpBalanceOf }
func (OwnerOf) Kind() hts.OperationKind          { return hts.OpOwnerOf }
func (TokenURI) Kind() hts.OperationKind         { return hts.OpTokenURI }
func (Allowance) Kind() hts.OperationKind        { return hts.OpAllowance }
func (GetApproved) Kind() hts.OperationKind      { return hts.OpGetApproved }
func (IsApprovedForAll) Kind() hts.OperationKind { return hts.OpIsApprovedForAll }
func (IsAssociated) Kind() hts.OperationKind     { return hts.OpIsAssociated }
func (IsFrozen) Kind() hts.OperationKind         { return hts.OpIsFrozen }
func (IsKyc) Kind() hts.OperationKind            { return hts.OpIsKyc }
func (IsToken) Kind() hts.OperationKind          { return hts.OpIsToken }
func (GetTokenType) Kind() hts.OperationKind     { return hts.OpGetTokenType }
