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

// CustomFee is one entry of a token's custom fee schedule. The set of fee
// variants is closed.
type CustomFee interface {
	FeeCollector() AccountID
	isCustomFee()
}

// FixedFee charges a fixed amount denominated in HBAR or in a token.
type FixedFee struct {
	Amount            int64
	DenominatingToken TokenID
	Collector         AccountID
}

// FractionalFee charges a fraction of each fungible unit transferred, bounded
// by Min and Max (a zero Max means unbounded). With NetOfTransfers the fee is
// charged to the sender on top of the transfer; otherwise it is deducted from
// the credited amount.
type FractionalFee struct {
	Numerator      int64
	Denominator    int64
	Min            int64
	Max            int64
	NetOfTransfers bool
	Collector      AccountID
}

// RoyaltyFee charges a fraction of the fungible value exchanged for an NFT,
// or the fallback fee to the receiver if no value was exchanged.
type RoyaltyFee struct {
	Numerator   int64
	Denominator int64
	Fallback    *FixedFee
	Collector   AccountID
}

func (f FixedFee) FeeCollector() AccountID      { return f.Collector }
func (f FractionalFee) FeeCollector() AccountID { return f.Collector }
func (f RoyaltyFee) FeeCollector() AccountID    { return f.Collector }

func (FixedFee) isCustomFee()      {}
func (FractionalFee) isCustomFee() {}
func (RoyaltyFee) isCustomFee()    {}
