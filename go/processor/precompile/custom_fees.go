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
	"math"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/holiman/uint256"
)

// assessCustomFees charges the custom fees of all tokens moved by the
// transfer. Fees are charged on top of the transfer itself and are listed
// on the record.
func (x *execution) assessCustomFees(t *transfer) error {
	royaltiesCharged := map[royaltyKey]bool{}
	for i := range t.tokens {
		list := &t.tokens[i]
		if len(list.token.CustomFees) == 0 {
			continue
		}
		for j := range list.fungible {
			if change := &list.fungible[j]; change.isDebit() {
				if err := x.chargeFungibleFees(list, change); err != nil {
					return err
				}
			}
		}
		for j := range list.nfts {
			if err := x.chargeNftFees(t, list, &list.nfts[j], royaltiesCharged); err != nil {
				return err
			}
		}
	}
	return nil
}

// isExempt reports whether the payer is spared a fee. Treasuries and the
// collector of a fee never pay it.
func isExempt(token *hts.Token, payer hts.AccountID, fee hts.CustomFee) bool {
	return payer == token.Treasury || payer == fee.FeeCollector()
}

func (x *execution) chargeFungibleFees(list *tokenChanges, debit *fungibleChange) error {
	token := &list.token
	payer := debit.account.ID
	for _, fee := range token.CustomFees {
		if isExempt(token, payer, fee) {
			continue
		}
		var err error
		switch fee := fee.(type) {
		case hts.FixedFee:
			err = x.chargeFee(payer, fee.Collector, fee.DenominatingToken, fee.Amount, debit.approval)
		case hts.FractionalFee:
			share := fractionOf(-debit.amount, fee.Numerator, fee.Denominator)
			if share < fee.Min {
				share = fee.Min
			}
			if fee.Max > 0 && share > fee.Max {
				share = fee.Max
			}
			if fee.NetOfTransfers {
				err = x.chargeFee(payer, fee.Collector, token.ID, share, debit.approval)
			} else {
				err = x.deductFromReceivers(list, fee.Collector, share)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// deductFromReceivers takes a fractional fee out of the amounts credited by
// the transfer. Hollow receivers created by the same operation can not
// consent to this unless configured otherwise.
func (x *execution) deductFromReceivers(list *tokenChanges, collector hts.AccountID, share int64) error {
	remaining := share
	for _, credit := range list.fungible {
		if remaining == 0 {
			break
		}
		if credit.amount <= 0 || credit.account.ID == collector {
			continue
		}
		if credit.account.IsHollow() && x.createdHere(credit.account.ID) && !x.config.ChargeFeesToHollowReceivers {
			return hts.Fail(hts.InvalidSignature)
		}
		take := min(remaining, credit.amount)
		if err := x.chargeFee(credit.account.ID, collector, list.token.ID, take, false); err != nil {
			return err
		}
		remaining -= take
	}
	return nil
}

type royaltyKey struct {
	token  hts.TokenID
	sender hts.AccountID
}

type denominatedAmount struct {
	token  hts.TokenID
	amount int64
}

func (x *execution) chargeNftFees(t *transfer, list *tokenChanges, move *nftChange, royaltiesCharged map[royaltyKey]bool) error {
	token := &list.token
	payer := move.from.ID
	for _, fee := range token.CustomFees {
		if isExempt(token, payer, fee) {
			continue
		}
		switch fee := fee.(type) {
		case hts.FixedFee:
			if err := x.chargeFee(payer, fee.Collector, fee.DenominatingToken, fee.Amount, move.approval); err != nil {
				return err
			}
		case hts.RoyaltyFee:
			exchanged := receivedBy(t, payer)
			if len(exchanged) == 0 {
				if fee.Fallback == nil {
					continue
				}
				if err := x.authorizeAccount(&move.to); err != nil {
					return err
				}
				if err := x.chargeFee(move.to.ID, fee.Collector, fee.Fallback.DenominatingToken, fee.Fallback.Amount, false); err != nil {
					return err
				}
				continue
			}
			key := royaltyKey{token: token.ID, sender: payer}
			if royaltiesCharged[key] {
				continue
			}
			royaltiesCharged[key] = true
			for _, value := range exchanged {
				royalty := fractionOf(value.amount, fee.Numerator, fee.Denominator)
				if err := x.chargeFee(payer, fee.Collector, value.token, royalty, false); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// receivedBy lists the fungible value credited to the account by the
// transfer, HBAR first.
func receivedBy(t *transfer, account hts.AccountID) []denominatedAmount {
	var res []denominatedAmount
	for _, change := range t.hbar {
		if change.amount > 0 && change.account.ID == account {
			res = append(res, denominatedAmount{token: hts.HBAR, amount: change.amount})
		}
	}
	for i := range t.tokens {
		list := &t.tokens[i]
		for _, change := range list.fungible {
			if change.amount > 0 && change.account.ID == account {
				res = append(res, denominatedAmount{token: list.token.ID, amount: change.amount})
			}
		}
	}
	return res
}

// chargeFee moves a custom fee from the payer to the collector. Fees on a
// debit authorized by an allowance must be covered by the spender's
// allowance in the fee's denomination.
func (x *execution) chargeFee(payer, collector hts.AccountID, denomination hts.TokenID, amount int64, viaApproval bool) error {
	if amount <= 0 {
		return nil
	}
	if denomination != hts.HBAR {
		if _, found := x.view.GetRelationship(collector, denomination); !found {
			return hts.Fail(hts.TokenNotAssociatedToFeeCollector)
		}
	}
	if viaApproval {
		if err := x.spendAllowance(payer, denomination, amount); err != nil {
			return err
		}
	}

	var debit, credit hts.Effect
	if denomination == hts.HBAR {
		account, _ := x.view.GetAccount(payer)
		if account.Balance < amount {
			return hts.Fail(hts.InsufficientSenderAccountBalanceForCustomFee)
		}
		debit = hts.HbarAdjust{Account: payer, Delta: -amount}
		credit = hts.HbarAdjust{Account: collector, Delta: amount}
	} else {
		rel, found := x.view.GetRelationship(payer, denomination)
		if !found || rel.Balance < amount {
			return hts.Fail(hts.InsufficientSenderAccountBalanceForCustomFee)
		}
		debit = hts.TokenAdjust{Account: payer, Token: denomination, Delta: -amount}
		credit = hts.TokenAdjust{Account: collector, Token: denomination, Delta: amount}
	}
	if err := x.apply(debit, credit); err != nil {
		return err
	}
	x.record.AssessedCustomFees = append(x.record.AssessedCustomFees, hts.AssessedCustomFee{
		Token:     denomination,
		Collector: collector,
		Amount:    amount,
		Payers:    []hts.AccountID{payer},
	})
	return nil
}

// fractionOf computes amount*numerator/denominator rounding down. Results
// exceeding the int64 range saturate.
func fractionOf(amount, numerator, denominator int64) int64 {
	if amount <= 0 || numerator <= 0 || denominator <= 0 {
		return 0
	}
	res := new(uint256.Int).Mul(uint256.NewInt(uint64(amount)), uint256.NewInt(uint64(numerator)))
	res.Div(res, uint256.NewInt(uint64(denominator)))
	if !res.IsUint64() || res.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(res.Uint64())
}
