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
	"errors"
	"testing"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

func successRecord(kind hts.OperationKind) hts.ChildRecord {
	return hts.ChildRecord{Kind: kind, Status: hts.Success}
}

func TestCoordinator_RecordedEffectsAreVisibleAndCommitted(t *testing.T) {
	ledger := newTestLedger()
	coordinator := NewCoordinator(ledger)

	effect := hts.HbarAdjust{Account: bob, Delta: 5}
	if err := coordinator.Record(successRecord(hts.OpTransferBatch), []hts.Effect{effect, hts.HbarAdjust{Account: alice, Delta: -5}}); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	if want, got := int64(1005), hbarBalance(coordinator.View(), bob); want != got {
		t.Errorf("effect not visible, wanted %d, got %d", want, got)
	}
	if want, got := int64(1000), hbarBalance(ledger, bob); want != got {
		t.Errorf("ledger modified before finalization, wanted %d, got %d", want, got)
	}

	if err := coordinator.Finalize(true, ledger); err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}
	if want, got := int64(1005), hbarBalance(ledger, bob); want != got {
		t.Errorf("effect not committed, wanted %d, got %d", want, got)
	}
	if want, got := hts.Success, coordinator.Records()[0].Status; want != got {
		t.Errorf("unexpected record status, wanted %v, got %v", want, got)
	}
}

func TestCoordinator_RevertingFramesDiscardsTheirEffects(t *testing.T) {
	ledger := newTestLedger()
	coordinator := NewCoordinator(ledger)

	if err := coordinator.Record(successRecord(hts.OpFreeze), []hts.Effect{hts.FreezeSet{Account: bob, Token: fungible, Frozen: true}}); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	snapshot := coordinator.Snapshot()
	if err := coordinator.Record(successRecord(hts.OpApprove), []hts.Effect{hts.AllowanceSet{Owner: alice, Spender: bob, Token: fungible, Amount: 3}}); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	failed := hts.ChildRecord{Kind: hts.OpMint, Status: hts.TokenHasNoSupplyKey}
	if err := coordinator.Record(failed, nil); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	coordinator.RevertToSnapshot(snapshot)

	records := coordinator.Records()
	want := []hts.Status{hts.Success, hts.RevertedSuccess, hts.TokenHasNoSupplyKey}
	if len(records) != len(want) {
		t.Fatalf("unexpected number of records, wanted %d, got %d", len(want), len(records))
	}
	for i, status := range want {
		if records[i].Status != status {
			t.Errorf("unexpected status of record %d, wanted %v, got %v", i, status, records[i].Status)
		}
	}
	if got := coordinator.View().GetAllowance(alice, bob, fungible); got != 0 {
		t.Errorf("reverted allowance still visible: %d", got)
	}
	if want, got := 1, len(coordinator.Effects()); want != got {
		t.Errorf("unexpected number of surviving effects, wanted %d, got %d", want, got)
	}

	if err := coordinator.Finalize(true, ledger); err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}
	if rel, _ := ledger.GetRelationship(bob, fungible); !rel.Frozen {
		t.Errorf("surviving effect not committed")
	}
}

func TestCoordinator_FailedTransactionsCommitNothing(t *testing.T) {
	ledger := newTestLedger()
	before := ledger.Clone()
	coordinator := NewCoordinator(ledger)
	if err := coordinator.Record(successRecord(hts.OpMint), []hts.Effect{hts.SupplyAdjust{Token: fungible, Delta: 1}}); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	if err := coordinator.Finalize(false, ledger); err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}
	if !ledger.Equal(before) {
		t.Errorf("failed transaction modified the ledger: %v", ledger.Diff(before))
	}
	if want, got := hts.RevertedSuccess, coordinator.Records()[0].Status; want != got {
		t.Errorf("unexpected record status, wanted %v, got %v", want, got)
	}
}

func TestCoordinator_InconsistentEffectsAreRejected(t *testing.T) {
	coordinator := NewCoordinator(newTestLedger())
	effects := []hts.Effect{
		hts.HbarAdjust{Account: bob, Delta: 10},
		hts.HbarAdjust{Account: alice, Delta: -5000},
	}
	err := coordinator.Apply(effects...)
	if !errors.Is(err, hts.ErrInconsistentEffect) {
		t.Fatalf("unexpected error, wanted %v, got %v", hts.ErrInconsistentEffect, err)
	}
	if want, got := int64(1000), hbarBalance(coordinator.View(), bob); want != got {
		t.Errorf("partially applied effects are visible, wanted %d, got %d", want, got)
	}
	if len(coordinator.Effects()) != 0 {
		t.Errorf("rejected effects are retained")
	}
}
