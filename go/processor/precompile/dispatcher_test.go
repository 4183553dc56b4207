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
	"math/big"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/mock/gomock"
)

// precompileFrame creates the frame of the given contract calling the
// precompile on behalf of alice.
func precompileFrame(kind hts.CallKind, caller hts.AccountID) *hts.CallFrame {
	outer := hts.NewCallFrame(nil, hts.Call, alice.Address(), caller.Address(), caller.Address())
	return hts.NewCallFrame(outer, kind, caller.Address(), hts.PrecompileAddress, hts.PrecompileAddress)
}

func invocationOf(kind hts.CallKind, gas hts.Gas, records hts.RecordKeeper) hts.Invocation {
	return hts.Invocation{
		Frame:   precompileFrame(kind, contract),
		Gas:     gas,
		Records: records,
	}
}

func responseCode(t *testing.T, method string, output hts.Data) hts.Status {
	t.Helper()
	values, err := tokenServiceABI.Unpack(method, output)
	if err != nil {
		t.Fatalf("failed to unpack output of %s: %v", method, err)
	}
	return hts.Status(values[0].(int64))
}

func TestDispatcher_SuccessfulCallsAreRecorded(t *testing.T) {
	ledger := newTestLedger()
	coordinator := NewCoordinator(ledger)
	dispatcher := NewDispatcher(DefaultConfig)

	input := pack(t, &tokenServiceABI, "associateToken", addr(contract), common.Address(other.Address()))
	result := dispatcher.Dispatch(input, invocationOf(hts.Call, 100_000, coordinator))
	if !result.Success {
		t.Fatalf("call failed: %s", result.RevertReason)
	}
	if want, got := DefaultConfig.GasCost, result.GasUsed; want != got {
		t.Errorf("unexpected gas usage, wanted %d, got %d", want, got)
	}
	if want, got := hts.Success, responseCode(t, "associateToken", result.Output); want != got {
		t.Errorf("unexpected response code, wanted %v, got %v", want, got)
	}

	records := coordinator.Records()
	if len(records) != 1 {
		t.Fatalf("unexpected number of records: %d", len(records))
	}
	if want, got := hts.OpAssociate, records[0].Kind; want != got {
		t.Errorf("unexpected record kind, wanted %v, got %v", want, got)
	}
	if _, found := coordinator.View().GetRelationship(contract, other); !found {
		t.Errorf("association not visible to later calls")
	}
	if _, found := ledger.GetRelationship(contract, other); found {
		t.Errorf("ledger modified before the transaction was finalized")
	}
}

func TestDispatcher_FailuresAreReportedByResponseCodeOrRevert(t *testing.T) {
	tests := map[string]struct {
		input     func(t *testing.T) []byte
		method    string // set for calls reporting a response code
		kind      hts.CallKind
		gas       hts.Gas
		status    hts.Status
		reason    string
		noRecords bool
		gasUsed   hts.Gas
	}{
		"missing supply key": {
			input: func(t *testing.T) []byte {
				return pack(t, &tokenServiceABI, "mintToken", common.Address(other.Address()), uint64(1), [][]byte{})
			},
			method:  "mintToken",
			status:  hts.TokenHasNoSupplyKey,
			gasUsed: DefaultConfig.GasCost,
		},
		"erc transfer exceeding the balance": {
			input: func(t *testing.T) []byte {
				return redirect(t, fungible, "transfer", addr(bob), big.NewInt(1000))
			},
			status:  hts.InsufficientTokenBalance,
			reason:  hts.InsufficientTokenBalance.String(),
			gasUsed: DefaultConfig.GasCost,
		},
		"transfer to system account": {
			input: func(t *testing.T) []byte {
				return pack(t, &tokenServiceABI, "transferToken", common.Address(fungible.Address()), addr(contract), common.Address(hts.MirrorAddress(3)), int64(1))
			},
			status:  hts.InvalidReceivingNodeAccount,
			reason:  hts.InvalidReceivingNodeAccount.String(),
			gasUsed: DefaultConfig.GasCost,
		},
		"transfer to unknown mirror address": {
			input: func(t *testing.T) []byte {
				return pack(t, &tokenServiceABI, "transferToken", common.Address(fungible.Address()), addr(contract), common.Address(hts.MirrorAddress(5000)), int64(1))
			},
			status:  hts.InvalidAliasKey,
			reason:  hts.InvalidAliasKey.String(),
			gasUsed: DefaultConfig.GasCost,
		},
		"insufficient gas": {
			input: func(t *testing.T) []byte {
				return pack(t, &tokenServiceABI, "associateToken", addr(contract), common.Address(other.Address()))
			},
			gas:     1000,
			status:  hts.InsufficientGas,
			reason:  hts.InsufficientGas.String(),
			gasUsed: 1000,
		},
		"state change in static call": {
			input: func(t *testing.T) []byte {
				return pack(t, &tokenServiceABI, "associateToken", addr(contract), common.Address(other.Address()))
			},
			kind:      hts.StaticCall,
			reason:    ErrStaticCall.Error(),
			noRecords: true,
			gasUsed:   100_000,
		},
		"unknown selector": {
			input: func(*testing.T) []byte {
				return []byte{1, 2, 3, 4}
			},
			reason:    ErrUnsupportedSelector.Error() + ": 0x01020304",
			noRecords: true,
			gasUsed:   100_000,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			coordinator := NewCoordinator(newTestLedger())
			gas := test.gas
			if gas == 0 {
				gas = 100_000
			}
			result := NewDispatcher(DefaultConfig).Dispatch(test.input(t), invocationOf(test.kind, gas, coordinator))

			if want, got := test.gasUsed, result.GasUsed; want != got {
				t.Errorf("unexpected gas usage, wanted %d, got %d", want, got)
			}
			if test.method != "" {
				if !result.Success {
					t.Fatalf("call reverted: %s", result.RevertReason)
				}
				if want, got := test.status, responseCode(t, test.method, result.Output); want != got {
					t.Errorf("unexpected response code, wanted %v, got %v", want, got)
				}
			} else {
				if result.Success {
					t.Fatalf("call did not revert")
				}
				if want, got := test.reason, result.RevertReason; want != got {
					t.Errorf("unexpected revert reason, wanted %q, got %q", want, got)
				}
			}

			records := coordinator.Records()
			if test.noRecords {
				if len(records) != 0 {
					t.Errorf("unexpected records: %v", records)
				}
				return
			}
			if len(records) != 1 {
				t.Fatalf("unexpected number of records: %d", len(records))
			}
			if want, got := test.status, records[0].Status; want != got {
				t.Errorf("unexpected record status, wanted %v, got %v", want, got)
			}
			if len(coordinator.Effects()) != 0 {
				t.Errorf("failed call produced effects: %v", coordinator.Effects())
			}
		})
	}
}

func TestDispatcher_ViewsMayBeCalledStatically(t *testing.T) {
	coordinator := NewCoordinator(newTestLedger())
	input := redirect(t, fungible, "balanceOf", addr(alice))
	result := NewDispatcher(DefaultConfig).Dispatch(input, invocationOf(hts.StaticCall, 100_000, coordinator))
	if !result.Success {
		t.Fatalf("view reverted: %s", result.RevertReason)
	}
	if want, got := DefaultConfig.ViewGasCost, result.GasUsed; want != got {
		t.Errorf("unexpected gas usage, wanted %d, got %d", want, got)
	}
	values, err := tokenFacadeABI.Unpack("balanceOf", result.Output)
	if err != nil {
		t.Fatalf("failed to unpack result: %v", err)
	}
	if want, got := big.NewInt(100), values[0].(*big.Int); want.Cmp(got) != 0 {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
}

func TestDispatcher_StaticCallsOfTokenProxiesAreRejected(t *testing.T) {
	proxyFrame := func(kind hts.CallKind) *hts.CallFrame {
		outer := hts.NewCallFrame(nil, hts.Call, alice.Address(), contract.Address(), contract.Address())
		proxy := hts.NewCallFrame(outer, kind, contract.Address(), fungible.Address(), fungible.Address())
		return hts.NewCallFrame(proxy, hts.DelegateCall, contract.Address(), fungible.Address(), hts.PrecompileAddress)
	}
	transfer := redirect(t, fungible, "transfer", addr(bob), big.NewInt(1))
	tests := map[string]struct {
		input    []byte
		kind     hts.CallKind
		reverted bool
		records  int
	}{
		"transfer through static call": {
			input:    transfer,
			kind:     hts.StaticCall,
			reverted: true,
		},
		"transfer through call": {
			input:   transfer,
			kind:    hts.Call,
			records: 1,
		},
		"view through static call": {
			input:   redirect(t, fungible, "balanceOf", addr(alice)),
			kind:    hts.StaticCall,
			records: 1,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			coordinator := NewCoordinator(newTestLedger())
			result := NewDispatcher(DefaultConfig).Dispatch(test.input, hts.Invocation{
				Frame:   proxyFrame(test.kind),
				Gas:     100_000,
				Records: coordinator,
			})
			if want, got := !test.reverted, result.Success; want != got {
				t.Fatalf("unexpected success, wanted %t, got %t (%s)", want, got, result.RevertReason)
			}
			if test.reverted {
				if want, got := ErrStaticCall.Error(), result.RevertReason; want != got {
					t.Errorf("unexpected revert reason, wanted %q, got %q", want, got)
				}
				if want, got := hts.Gas(100_000), result.GasUsed; want != got {
					t.Errorf("unexpected gas usage, wanted %d, got %d", want, got)
				}
			}
			if want, got := test.records, len(coordinator.Records()); want != got {
				t.Errorf("unexpected number of records, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestDispatcher_RoutingErrorsProduceNoRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := hts.NewMockRecordKeeper(ctrl)

	result := NewDispatcher(DefaultConfig).Dispatch(hts.Data{0xff}, invocationOf(hts.Call, 50, records))
	if result.Success {
		t.Fatalf("malformed input accepted")
	}
	if want, got := hts.Gas(50), result.GasUsed; want != got {
		t.Errorf("unexpected gas usage, wanted %d, got %d", want, got)
	}
}

func TestDispatcher_RecordKeeperFailuresAreReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := hts.NewMockRecordKeeper(ctrl)
	records.EXPECT().View().Return(newTestLedger())
	gomock.InOrder(
		records.EXPECT().Record(gomock.Any(), gomock.Any()).Return(hts.ErrInconsistentEffect),
		records.EXPECT().Record(gomock.Any(), nil).Return(nil),
	)

	input := pack(t, &tokenServiceABI, "associateToken", addr(contract), common.Address(other.Address()))
	result := NewDispatcher(DefaultConfig).Dispatch(input, invocationOf(hts.Call, 100_000, records))
	if !result.Success {
		t.Fatalf("call reverted: %s", result.RevertReason)
	}
	if want, got := hts.FailInvalid, responseCode(t, "associateToken", result.Output); want != got {
		t.Errorf("unexpected response code, wanted %v, got %v", want, got)
	}
}

func TestDispatcher_ConfigurationsAreRegistered(t *testing.T) {
	for _, name := range []string{"v1", "v2"} {
		if _, err := hts.NewDispatcher(name); err != nil {
			t.Errorf("failed to create dispatcher %s: %v", name, err)
		}
	}
	custom := DefaultConfig
	custom.GasCost = 1
	if _, err := hts.NewDispatcher("v1", custom); err != nil {
		t.Errorf("failed to create dispatcher with custom config: %v", err)
	}
	if _, err := hts.NewDispatcher("v1", "invalid"); err == nil {
		t.Errorf("invalid configuration accepted")
	}
}

func TestDispatcher_RestrictedModelIgnoresTopLevelSignatures(t *testing.T) {
	input := pack(t, &tokenServiceABI, "transferToken", common.Address(fungible.Address()), addr(alice), addr(bob), int64(10))
	for name, want := range map[string]hts.Status{"v1": hts.Success, "v2": hts.SpenderDoesNotHaveAllowance} {
		t.Run(name, func(t *testing.T) {
			dispatcher, err := hts.NewDispatcher(name)
			if err != nil {
				t.Fatalf("failed to create dispatcher: %v", err)
			}
			coordinator := NewCoordinator(newTestLedger())
			invocation := invocationOf(hts.Call, 100_000, coordinator)
			invocation.Signatures = sigs.NewKeySet(aliceKey)
			result := dispatcher.Dispatch(input, invocation)
			if !result.Success {
				t.Fatalf("call reverted: %s", result.RevertReason)
			}
			if got := responseCode(t, "transferToken", result.Output); want != got {
				t.Errorf("unexpected response code, wanted %v, got %v", want, got)
			}
		})
	}
}
