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

// Status is the response code of a ledger operation. The numeric values are
// the wire values of the ledger's response code enumeration and must not be
// changed.
type Status int32

const (
	OK                                                 Status = 0
	InvalidSignature                                   Status = 7
	NotSupported                                       Status = 13
	InvalidAccountID                                   Status = 15
	Success                                            Status = 22
	FailInvalid                                        Status = 23
	InsufficientAccountBalance                         Status = 28
	InsufficientGas                                    Status = 30
	ContractRevertExecuted                             Status = 33
	InvalidReceivingNodeAccount                        Status = 35
	InvalidAccountAmounts                              Status = 48
	AccountDeleted                                     Status = 72
	RevertedSuccess                                    Status = 104
	AccountFrozenForToken                              Status = 165
	TokensPerAccountLimitExceeded                      Status = 166
	InvalidTokenID                                     Status = 167
	TokenHasNoFreezeKey                                Status = 172
	TransfersNotZeroSumForToken                        Status = 173
	AccountKycNotGrantedForToken                       Status = 176
	TokenHasNoKycKey                                   Status = 177
	InsufficientTokenBalance                           Status = 178
	TokenWasDeleted                                    Status = 179
	TokenHasNoSupplyKey                                Status = 180
	TokenHasNoWipeKey                                  Status = 181
	InvalidTokenMintAmount                             Status = 182
	InvalidTokenBurnAmount                             Status = 183
	TokenNotAssociatedToAccount                        Status = 184
	CannotWipeTokenTreasuryAccount                     Status = 185
	InvalidWipingAmount                                Status = 192
	TokenIsImmutable                                   Status = 193
	TokenAlreadyAssociatedToAccount                    Status = 194
	TransactionRequiresZeroTokenBalances               Status = 195
	AccountIsTreasury                                  Status = 196
	TokenIDRepeatedInTokenList                         Status = 197
	InvalidTokenMintMetadata                           Status = 224
	InvalidTokenNftSerialNumber                        Status = 225
	InvalidNftID                                       Status = 226
	MetadataTooLong                                    Status = 227
	TokenMaxSupplyReached                              Status = 234
	SenderDoesNotOwnNftSerialNo                        Status = 237
	TokenNotAssociatedToFeeCollector                   Status = 240
	InsufficientSenderAccountBalanceForCustomFee       Status = 243
	InvalidTokenBurnMetadata                           Status = 245
	AccountAmountTransfersOnlyAllowedForFungibleCommon Status = 247
	TreasuryMustOwnBurnedNft                           Status = 252
	AccountDoesNotOwnWipedNft                          Status = 253
	InvalidAliasKey                                    Status = 255
	NoRemainingAutomaticAssociations                   Status = 262
	TokenHasNoPauseKey                                 Status = 264
	TokenIsPaused                                      Status = 265
	AccountStillOwnsNfts                               Status = 284
	InvalidAllowanceOwnerID                            Status = 290
	InvalidAllowanceSpenderID                          Status = 291
	SpenderDoesNotHaveAllowance                        Status = 292
	AmountExceedsAllowance                             Status = 293
	SpenderAccountSameAsOwner                          Status = 294
	NegativeAllowanceAmount                            Status = 296
	InvalidFullPrefixSignatureForPrecompile            Status = 317
)

var statusNames = map[Status]string{
	OK:                                                 "OK",
	InvalidSignature:                                   "INVALID_SIGNATURE",
	NotSupported:                                       "NOT_SUPPORTED",
	InvalidAccountID:                                   "INVALID_ACCOUNT_ID",
	Success:                                            "SUCCESS",
	FailInvalid:                                        "FAIL_INVALID",
	InsufficientAccountBalance:                         "INSUFFICIENT_ACCOUNT_BALANCE",
	InsufficientGas:                                    "INSUFFICIENT_GAS",
	ContractRevertExecuted:                             "CONTRACT_REVERT_EXECUTED",
	InvalidReceivingNodeAccount:                        "INVALID_RECEIVING_NODE_ACCOUNT",
	InvalidAccountAmounts:                              "INVALID_ACCOUNT_AMOUNTS",
	AccountDeleted:                                     "ACCOUNT_DELETED",
	RevertedSuccess:                                    "REVERTED_SUCCESS",
	AccountFrozenForToken:                              "ACCOUNT_FROZEN_FOR_TOKEN",
	TokensPerAccountLimitExceeded:                      "TOKENS_PER_ACCOUNT_LIMIT_EXCEEDED",
	InvalidTokenID:                                     "INVALID_TOKEN_ID",
	TokenHasNoFreezeKey:                                "TOKEN_HAS_NO_FREEZE_KEY",
	TransfersNotZeroSumForToken:                        "TRANSFERS_NOT_ZERO_SUM_FOR_TOKEN",
	AccountKycNotGrantedForToken:                       "ACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN",
	TokenHasNoKycKey:                                   "TOKEN_HAS_NO_KYC_KEY",
	InsufficientTokenBalance:                           "INSUFFICIENT_TOKEN_BALANCE",
	TokenWasDeleted:                                    "TOKEN_WAS_DELETED",
	TokenHasNoSupplyKey:                                "TOKEN_HAS_NO_SUPPLY_KEY",
	TokenHasNoWipeKey:                                  "TOKEN_HAS_NO_WIPE_KEY",
	InvalidTokenMintAmount:                             "INVALID_TOKEN_MINT_AMOUNT",
	InvalidTokenBurnAmount:                             "INVALID_TOKEN_BURN_AMOUNT",
	TokenNotAssociatedToAccount:                        "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT",
	CannotWipeTokenTreasuryAccount:                     "CANNOT_WIPE_TOKEN_TREASURY_ACCOUNT",
	InvalidWipingAmount:                                "INVALID_WIPING_AMOUNT",
	TokenIsImmutable:                                   "TOKEN_IS_IMMUTABLE",
	TokenAlreadyAssociatedToAccount:                    "TOKEN_ALREADY_ASSOCIATED_TO_ACCOUNT",
	TransactionRequiresZeroTokenBalances:               "TRANSACTION_REQUIRES_ZERO_TOKEN_BALANCES",
	AccountIsTreasury:                                  "ACCOUNT_IS_TREASURY",
	TokenIDRepeatedInTokenList:                         "TOKEN_ID_REPEATED_IN_TOKEN_LIST",
	InvalidTokenMintMetadata:                           "INVALID_TOKEN_MINT_METADATA",
	InvalidTokenNftSerialNumber:                        "INVALID_TOKEN_NFT_SERIAL_NUMBER",
	InvalidNftID:                                       "INVALID_NFT_ID",
	MetadataTooLong:                                    "METADATA_TOO_LONG",
	TokenMaxSupplyReached:                              "TOKEN_MAX_SUPPLY_REACHED",
	SenderDoesNotOwnNftSerialNo:                        "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO",
	TokenNotAssociatedToFeeCollector:                   "TOKEN_NOT_ASSOCIATED_TO_FEE_COLLECTOR",
	InsufficientSenderAccountBalanceForCustomFee:       "INSUFFICIENT_SENDER_ACCOUNT_BALANCE_FOR_CUSTOM_FEE",
	InvalidTokenBurnMetadata:                           "INVALID_TOKEN_BURN_METADATA",
	AccountAmountTransfersOnlyAllowedForFungibleCommon: "ACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON",
	TreasuryMustOwnBurnedNft:                           "TREASURY_MUST_OWN_BURNED_NFT",
	AccountDoesNotOwnWipedNft:                          "ACCOUNT_DOES_NOT_OWN_WIPED_NFT",
	InvalidAliasKey:                                    "INVALID_ALIAS_KEY",
	NoRemainingAutomaticAssociations:                   "NO_REMAINING_AUTOMATIC_ASSOCIATIONS",
	TokenHasNoPauseKey:                                 "TOKEN_HAS_NO_PAUSE_KEY",
	TokenIsPaused:                                      "TOKEN_IS_PAUSED",
	AccountStillOwnsNfts:                               "ACCOUNT_STILL_OWNS_NFTS",
	InvalidAllowanceOwnerID:                            "INVALID_ALLOWANCE_OWNER_ID",
	InvalidAllowanceSpenderID:                          "INVALID_ALLOWANCE_SPENDER_ID",
	SpenderDoesNotHaveAllowance:                        "SPENDER_DOES_NOT_HAVE_ALLOWANCE",
	AmountExceedsAllowance:                             "AMOUNT_EXCEEDS_ALLOWANCE",
	SpenderAccountSameAsOwner:                          "SPENDER_ACCOUNT_SAME_AS_OWNER",
	NegativeAllowanceAmount:                            "NEGATIVE_ALLOWANCE_AMOUNT",
	InvalidFullPrefixSignatureForPrecompile:            "INVALID_FULL_PREFIX_SIGNATURE_FOR_PRECOMPILE",
}

var statusByName = func() map[string]Status {
	res := make(map[string]Status, len(statusNames))
	for status, name := range statusNames {
		res[name] = status
	}
	return res
}()

func (s Status) String() string {
	if name, found := statusNames[s]; found {
		return name
	}
	return fmt.Sprintf("STATUS_%d", int32(s))
}

// IsSuccess reports whether the status denotes a successful operation.
func (s Status) IsSuccess() bool {
	return s == Success || s == OK
}

func (s Status) MarshalText() ([]byte, error) {
	if _, found := statusNames[s]; !found {
		return nil, fmt.Errorf("unknown status: %d", int32(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(data []byte) error {
	status, found := statusByName[string(data)]
	if !found {
		return fmt.Errorf("unknown status: %s", data)
	}
	*s = status
	return nil
}
