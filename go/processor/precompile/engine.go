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
	"fmt"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/state"
)

// Outcome is the result of executing an operation. Values are the results
// following the response code, using int64 for all numbers, hts.Address for
// addresses and the natural Go types otherwise.
type Outcome struct {
	Effects []hts.Effect
	Record  hts.ChildRecord
	Values  []any
	Logs    []hts.Log
	// Void is set for ERC-721 functions producing no return value.
	Void bool
}

// Engine validates operations and computes their effects. Execution is a
// pure function of the operation, the call context and the ledger view.
type Engine struct {
	config Config
	keys   KeyEvaluator
}

func NewEngine(config Config, signatures hts.SignatureVerifier) *Engine {
	return &Engine{
		config: config,
		keys: KeyEvaluator{
			TopLevelSignatures: config.TopLevelSignatures,
			Signatures:         signatures,
		},
	}
}

// Execute runs the checks of the given operation in their fixed order and
// computes its effects. The first failing check determines the returned
// status error. The record of the outcome is filled in either case; effects
// are only reported on success.
func (e *Engine) Execute(op Operation, ctx CallContext, view hts.LedgerView) (Outcome, error) {
	x := &execution{
		Engine: e,
		op:     op,
		ctx:    &ctx,
		view:   state.NewOverlay(view),
		record: hts.ChildRecord{Kind: op.Kind()},
	}
	err := x.run()
	if err != nil {
		return Outcome{Record: x.record}, err
	}
	x.record.Logs = x.logs
	return Outcome{
		Effects: x.effects,
		Record:  x.record,
		Values:  x.values,
		Logs:    x.logs,
		Void:    x.void,
	}, nil
}

// execution is the state of a single Execute call. Effects are applied to
// a private overlay as they are computed, so later checks observe them.
type execution struct {
	*Engine
	op      Operation
	ctx     *CallContext
	view    *state.Overlay
	effects []hts.Effect
	record  hts.ChildRecord
	values  []any
	logs    []hts.Log
	void    bool
}

func (x *execution) run() error {
	switch op := x.op.(type) {
	case Associate:
		return x.associate(op)
	case Dissociate:
		return x.dissociate(op)
	case Mint:
		return x.mint(op)
	case Burn:
		return x.burn(op)
	case TransferFungible:
		return x.transferFungible(op)
	case TransferNFT:
		return x.transferNFT(op)
	case TransferBatch:
		return x.transferBatch(op)
	case TransferFrom:
		return x.transferFrom(op.Token, op.From, op.To, op.Amount)
	case TransferFromNFT:
		return x.transferFromNFT(op.Token, op.From, op.To, op.Serial)
	case ErcTransferFrom:
		return x.ercTransferFrom(op)
	case Approve:
		return x.approve(op.Token, op.Spender, op.Amount)
	case ApproveNFT:
		return x.approveNFT(op.Token, op.Spender, op.Serial)
	case ErcApprove:
		return x.ercApprove(op)
	case ApproveForAll:
		return x.approveForAll(op)
	case Freeze:
		return x.setFrozen(op.Token, op.Account, true)
	case Unfreeze:
		return x.setFrozen(op.Token, op.Account, false)
	case GrantKyc:
		return x.setKyc(op.Token, op.Account, true)
	case RevokeKyc:
		return x.setKyc(op.Token, op.Account, false)
	case WipeFungible:
		return x.wipeFungible(op)
	case WipeNFT:
		return x.wipeNFT(op)
	case Pause:
		return x.setPaused(op.Token, true)
	case Unpause:
		return x.setPaused(op.Token, false)
	case Delete:
		return x.delete(op)
	case Name, Symbol, Decimals, TotalSupply, BalanceOf, OwnerOf, TokenURI,
		Allowance, GetApproved, IsApprovedForAll, IsAssociated, IsFrozen,
		IsKyc, IsToken, GetTokenType:
		return x.read(op)
	}
	return fmt.Errorf("unsupported operation %T", x.op)
}

// apply records effects and applies them to the private overlay.
func (x *execution) apply(effects ...hts.Effect) error {
	if err := hts.ApplyEffects(x.view, effects...); err != nil {
		return err
	}
	x.effects = append(x.effects, effects...)
	return nil
}

func (x *execution) emit(log hts.Log) {
	if x.op.origin().facade {
		x.logs = append(x.logs, log)
	}
}

// token resolves a token address. The first resolved token is reported on
// the record.
func (x *execution) token(address hts.Address) (hts.Token, error) {
	if !address.IsMirror() {
		return hts.Token{}, hts.Fail(hts.InvalidTokenID)
	}
	token, found := x.view.GetToken(hts.TokenID(address.EntityNum()))
	if !found {
		return hts.Token{}, hts.Fail(hts.InvalidTokenID)
	}
	if token.Deleted {
		return hts.Token{}, hts.Fail(hts.TokenWasDeleted)
	}
	if x.record.Token == 0 {
		x.record.Token = token.ID
	}
	return token, nil
}

// account resolves an existing account, reporting the given status if there
// is none.
func (x *execution) account(address hts.Address, missing hts.Status) (hts.Account, error) {
	id, found := lookupAccount(address, x.view)
	if !found {
		return hts.Account{}, hts.Fail(missing)
	}
	account, found := x.view.GetAccount(id)
	if !found {
		return hts.Account{}, hts.Fail(missing)
	}
	if account.Deleted {
		return hts.Account{}, hts.Fail(hts.AccountDeleted)
	}
	return account, nil
}

func (x *execution) caller(missing hts.Status) (hts.Account, error) {
	return x.account(x.ctx.Active, missing)
}

func (x *execution) authorize(key hts.Key) error {
	return x.keys.Authorize(key, x.ctx)
}

func (x *execution) authorizeAccount(account *hts.Account) error {
	return x.keys.AuthorizeAccount(account, x.ctx)
}

// addressOf returns the EVM address of an account, which is its alias if it
// has one.
func (x *execution) addressOf(id hts.AccountID) hts.Address {
	if id == 0 {
		return hts.Address{}
	}
	if account, found := x.view.GetAccount(id); found && account.Alias != nil {
		return *account.Alias
	}
	return id.Address()
}
