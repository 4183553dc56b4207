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
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// ErrUnsupportedSelector is reported for inputs not starting with the
	// selector of a supported function.
	ErrUnsupportedSelector = hts.ConstError("unsupported selector")
	// ErrMalformedArguments is reported for inputs whose arguments do not
	// decode into the parameters of the selected function.
	ErrMalformedArguments = hts.ConstError("malformed arguments")
)

var (
	//go:embed abi/token_service.json
	tokenServiceJSON string
	//go:embed abi/token_facade.json
	tokenFacadeJSON string

	tokenServiceABI abi.ABI
	tokenFacadeABI  abi.ABI
)

func init() {
	var err error
	if tokenServiceABI, err = abi.JSON(strings.NewReader(tokenServiceJSON)); err != nil {
		panic(fmt.Errorf("failed to parse token service ABI: %w", err))
	}
	if tokenFacadeABI, err = abi.JSON(strings.NewReader(tokenFacadeJSON)); err != nil {
		panic(fmt.Errorf("failed to parse token facade ABI: %w", err))
	}
}

// Route decodes the input of a precompile call into an operation. Calls of
// the ERC token facade arrive wrapped into redirectForToken. Route performs
// no checks beyond structural decoding.
func Route(input []byte) (Operation, error) {
	method, args, err := decode(&tokenServiceABI, input)
	if err != nil {
		return nil, err
	}
	if method.RawName == "redirectForToken" {
		return routeFacade(toAddress(args[0]), args[1].([]byte))
	}
	return routeTokenService(call{method: method}, args)
}

// TokenServiceABI returns the ABI of the functions of the precompile.
func TokenServiceABI() *abi.ABI {
	return &tokenServiceABI
}

// TokenFacadeABI returns the ABI of the ERC functions offered by token
// proxies.
func TokenFacadeABI() *abi.ABI {
	return &tokenFacadeABI
}

// EncodeRedirect wraps the input of a call to a token proxy into the
// redirectForToken call forwarded to the precompile.
func EncodeRedirect(token hts.Address, input hts.Data) (hts.Data, error) {
	return tokenServiceABI.Pack("redirectForToken", common.Address(token), []byte(input))
}

func decode(contract *abi.ABI, input []byte) (*abi.Method, []any, error) {
	if len(input) < 4 {
		return nil, nil, fmt.Errorf("%w: input of %d bytes", ErrUnsupportedSelector, len(input))
	}
	method, err := contract.MethodById(input[:4])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: 0x%x", ErrUnsupportedSelector, input[:4])
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedArguments, err)
	}
	// Dirty padding and trailing data are accepted by the decoder.
	canonical, err := method.Inputs.Pack(args...)
	if err != nil || !bytes.Equal(canonical, input[4:]) {
		return nil, nil, fmt.Errorf("%w: non-canonical encoding for %s", ErrMalformedArguments, method.Sig)
	}
	return method, args, nil
}

func routeTokenService(c call, args []any) (Operation, error) {
	switch c.method.RawName {
	case "associateToken":
		return Associate{call: c, Account: toAddress(args[0]), Tokens: []hts.Address{toAddress(args[1])}}, nil
	case "associateTokens":
		return Associate{call: c, Account: toAddress(args[0]), Tokens: toAddresses(args[1])}, nil
	case "dissociateToken":
		return Dissociate{call: c, Account: toAddress(args[0]), Tokens: []hts.Address{toAddress(args[1])}}, nil
	case "dissociateTokens":
		return Dissociate{call: c, Account: toAddress(args[0]), Tokens: toAddresses(args[1])}, nil

	case "mintToken":
		amount, err := toAmount(args[1])
		if err != nil {
			return nil, err
		}
		return Mint{call: c, Token: toAddress(args[0]), Amount: amount, Metadata: args[2].([][]byte)}, nil
	case "burnToken":
		amount, err := toAmount(args[1])
		if err != nil {
			return nil, err
		}
		return Burn{call: c, Token: toAddress(args[0]), Amount: amount, Serials: args[2].([]int64)}, nil

	case "transferToken":
		sender, receiver, amount := toAddress(args[1]), toAddress(args[2]), args[3].(int64)
		if amount < 0 {
			return nil, fmt.Errorf("%w: negative amount %d", ErrMalformedArguments, amount)
		}
		return TransferFungible{call: c, Token: toAddress(args[0]), Changes: []AccountAmount{
			{Account: sender, Amount: -amount},
			{Account: receiver, Amount: amount},
		}}, nil
	case "transferTokens":
		accounts, amounts := toAddresses(args[1]), args[2].([]int64)
		if len(accounts) != len(amounts) {
			return nil, fmt.Errorf("%w: %d accounts but %d amounts", ErrMalformedArguments, len(accounts), len(amounts))
		}
		changes := make([]AccountAmount, len(accounts))
		for i := range accounts {
			changes[i] = AccountAmount{Account: accounts[i], Amount: amounts[i]}
		}
		return TransferFungible{call: c, Token: toAddress(args[0]), Changes: changes}, nil
	case "transferNFT":
		return TransferNFT{call: c, Token: toAddress(args[0]), Moves: []NftExchange{
			{Sender: toAddress(args[1]), Receiver: toAddress(args[2]), Serial: args[3].(int64)},
		}}, nil
	case "transferNFTs":
		senders, receivers, serials := toAddresses(args[1]), toAddresses(args[2]), args[3].([]int64)
		if len(senders) != len(receivers) || len(senders) != len(serials) {
			return nil, fmt.Errorf("%w: %d senders, %d receivers and %d serials", ErrMalformedArguments, len(senders), len(receivers), len(serials))
		}
		moves := make([]NftExchange, len(senders))
		for i := range senders {
			moves[i] = NftExchange{Sender: senders[i], Receiver: receivers[i], Serial: serials[i]}
		}
		return TransferNFT{call: c, Token: toAddress(args[0]), Moves: moves}, nil
	case "cryptoTransfer":
		return routeCryptoTransfer(c, args)

	case "approve":
		amount, err := toInt64(args[2])
		if err != nil {
			return nil, err
		}
		return Approve{call: c, Token: toAddress(args[0]), Spender: toAddress(args[1]), Amount: amount}, nil
	case "approveNFT":
		serial, err := toInt64(args[2])
		if err != nil {
			return nil, err
		}
		return ApproveNFT{call: c, Token: toAddress(args[0]), Spender: toAddress(args[1]), Serial: serial}, nil
	case "setApprovalForAll":
		return ApproveForAll{call: c, Token: toAddress(args[0]), Operator: toAddress(args[1]), Approved: args[2].(bool)}, nil
	case "transferFrom":
		amount, err := toInt64(args[3])
		if err != nil {
			return nil, err
		}
		return TransferFrom{call: c, Token: toAddress(args[0]), From: toAddress(args[1]), To: toAddress(args[2]), Amount: amount}, nil
	case "transferFromNFT":
		serial, err := toInt64(args[3])
		if err != nil {
			return nil, err
		}
		return TransferFromNFT{call: c, Token: toAddress(args[0]), From: toAddress(args[1]), To: toAddress(args[2]), Serial: serial}, nil

	case "freezeToken":
		return Freeze{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil
	case "unfreezeToken":
		return Unfreeze{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil
	case "grantTokenKyc":
		return GrantKyc{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil
	case "revokeTokenKyc":
		return RevokeKyc{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil

	case "wipeTokenAccount":
		amount, err := toAmount(args[2])
		if err != nil {
			return nil, err
		}
		return WipeFungible{call: c, Token: toAddress(args[0]), Account: toAddress(args[1]), Amount: amount}, nil
	case "wipeTokenAccountNFT":
		return WipeNFT{call: c, Token: toAddress(args[0]), Account: toAddress(args[1]), Serials: args[2].([]int64)}, nil
	case "pauseToken":
		return Pause{call: c, Token: toAddress(args[0])}, nil
	case "unpauseToken":
		return Unpause{call: c, Token: toAddress(args[0])}, nil
	case "deleteToken":
		return Delete{call: c, Token: toAddress(args[0])}, nil

	case "allowance":
		return Allowance{call: c, Token: toAddress(args[0]), Owner: toAddress(args[1]), Spender: toAddress(args[2])}, nil
	case "getApproved":
		serial, err := toInt64(args[1])
		if err != nil {
			return nil, err
		}
		return GetApproved{call: c, Token: toAddress(args[0]), Serial: serial}, nil
	case "isApprovedForAll":
		return IsApprovedForAll{call: c, Token: toAddress(args[0]), Owner: toAddress(args[1]), Operator: toAddress(args[2])}, nil
	case "isFrozen":
		return IsFrozen{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil
	case "isKyc":
		return IsKyc{call: c, Token: toAddress(args[0]), Account: toAddress(args[1])}, nil
	case "isToken":
		return IsToken{call: c, Token: toAddress(args[0])}, nil
	case "getTokenType":
		return GetTokenType{call: c, Token: toAddress(args[0])}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSelector, c.method.Sig)
}

// Go representations of the cryptoTransfer tuples. Fields are assigned by
// position, so the tuples without approval flags fill the leading fields.
type abiAccountAmount struct {
	AccountID  common.Address
	Amount     int64
	IsApproval bool
}

type abiNftTransfer struct {
	SenderAccountID   common.Address
	ReceiverAccountID common.Address
	SerialNumber      int64
	IsApproval        bool
}

type abiTokenTransferList struct {
	Token        common.Address
	Transfers    []abiAccountAmount
	NftTransfers []abiNftTransfer
}

type abiTransferList struct {
	Transfers []abiAccountAmount
}

func routeCryptoTransfer(c call, args []any) (Operation, error) {
	var op TransferBatch
	op.call = c
	tokenArg := args[0]
	if len(args) == 2 {
		hbar := *abi.ConvertType(args[0], new(abiTransferList)).(*abiTransferList)
		op.Hbar = toAccountAmounts(hbar.Transfers)
		tokenArg = args[1]
	}
	lists := *abi.ConvertType(tokenArg, new([]abiTokenTransferList)).(*[]abiTokenTransferList)
	for _, list := range lists {
		moves := make([]NftExchange, 0, len(list.NftTransfers))
		for _, cur := range list.NftTransfers {
			moves = append(moves, NftExchange{
				Sender:     hts.Address(cur.SenderAccountID),
				Receiver:   hts.Address(cur.ReceiverAccountID),
				Serial:     cur.SerialNumber,
				IsApproval: cur.IsApproval,
			})
		}
		op.Tokens = append(op.Tokens, TokenTransferList{
			Token:   hts.Address(list.Token),
			Changes: toAccountAmounts(list.Transfers),
			Moves:   moves,
		})
	}
	return op, nil
}

func toAccountAmounts(transfers []abiAccountAmount) []AccountAmount {
	res := make([]AccountAmount, 0, len(transfers))
	for _, cur := range transfers {
		res = append(res, AccountAmount{
			Account:    hts.Address(cur.AccountID),
			Amount:     cur.Amount,
			IsApproval: cur.IsApproval,
		})
	}
	return res
}

// routeFacade decodes an ERC call addressed to the given token.
func routeFacade(token hts.Address, input []byte) (Operation, error) {
	method, args, err := decode(&tokenFacadeABI, input)
	if err != nil {
		return nil, err
	}
	c := call{method: method, facade: true}
	switch method.RawName {
	case "name":
		return Name{call: c, Token: token}, nil
	case "symbol":
		return Symbol{call: c, Token: token}, nil
	case "decimals":
		return Decimals{call: c, Token: token}, nil
	case "totalSupply":
		return TotalSupply{call: c, Token: token}, nil
	case "balanceOf":
		return BalanceOf{call: c, Token: token, Account: toAddress(args[0])}, nil
	case "ownerOf":
		serial, err := toInt64(args[0])
		if err != nil {
			return nil, err
		}
		return OwnerOf{call: c, Token: token, Serial: serial}, nil
	case "tokenURI":
		serial, err := toInt64(args[0])
		if err != nil {
			return nil, err
		}
		return TokenURI{call: c, Token: token, Serial: serial}, nil
	case "transfer":
		amount, err := toInt64(args[1])
		if err != nil {
			return nil, err
		}
		return TransferFungible{call: c, Token: token, FromCaller: true, Changes: []AccountAmount{
			{Account: toAddress(args[0]), Amount: amount},
		}}, nil
	case "transferFrom":
		value, err := toInt64(args[2])
		if err != nil {
			return nil, err
		}
		return ErcTransferFrom{call: c, Token: token, From: toAddress(args[0]), To: toAddress(args[1]), Value: value}, nil
	case "approve":
		value, err := toInt64(args[1])
		if err != nil {
			return nil, err
		}
		return ErcApprove{call: c, Token: token, Spender: toAddress(args[0]), Value: value}, nil
	case "allowance":
		return Allowance{call: c, Token: token, Owner: toAddress(args[0]), Spender: toAddress(args[1])}, nil
	case "getApproved":
		serial, err := toInt64(args[0])
		if err != nil {
			return nil, err
		}
		return GetApproved{call: c, Token: token, Serial: serial}, nil
	case "setApprovalForAll":
		return ApproveForAll{call: c, Token: token, Operator: toAddress(args[0]), Approved: args[1].(bool)}, nil
	case "isApprovedForAll":
		return IsApprovedForAll{call: c, Token: token, Owner: toAddress(args[0]), Operator: toAddress(args[1])}, nil
	case "associate":
		return Associate{call: c, Tokens: []hts.Address{token}, OfCaller: true}, nil
	case "dissociate":
		return Dissociate{call: c, Tokens: []hts.Address{token}, OfCaller: true}, nil
	case "isAssociated":
		return IsAssociated{call: c, Token: token}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSelector, method.Sig)
}

func toAddress(arg any) hts.Address {
	return hts.Address(arg.(common.Address))
}

func toAddresses(arg any) []hts.Address {
	list := arg.([]common.Address)
	res := make([]hts.Address, len(list))
	for i, cur := range list {
		res[i] = hts.Address(cur)
	}
	return res
}

// toAmount converts the amount argument of mint and burn, which is an
// int64 or a uint64 depending on the function version.
func toAmount(arg any) (int64, error) {
	switch v := arg.(type) {
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: amount %d exceeds int64", ErrMalformedArguments, v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("%w: unexpected amount type %T", ErrMalformedArguments, arg)
}

// toInt64 converts a uint256 argument, rejecting values beyond int64.
func toInt64(arg any) (int64, error) {
	value, overflow := uint256.FromBig(arg.(*big.Int))
	if overflow || !value.IsUint64() || value.Uint64() > math.MaxInt64 {
		return 0, fmt.Errorf("%w: value %v exceeds int64", ErrMalformedArguments, arg)
	}
	return int64(value.Uint64()), nil
}
