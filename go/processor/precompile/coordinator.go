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

// Coordinator collects the child records and pending effects of a single
// transaction. Effects are applied to an overlay of the transaction-start
// view right away, so later calls observe earlier ones. The ledger itself
// is only updated by Finalize.
type Coordinator struct {
	overlay   *state.Overlay
	records   []hts.ChildRecord
	effects   []hts.Effect
	snapshots []snapshot
}

type snapshot struct {
	overlay state.Snapshot
	records int
	effects int
}

func NewCoordinator(view hts.LedgerView) *Coordinator {
	return &Coordinator{overlay: state.NewOverlay(view)}
}

func (c *Coordinator) View() hts.LedgerView {
	return c.overlay
}

// Record appends a child record and applies its effects to the overlay.
func (c *Coordinator) Record(record hts.ChildRecord, effects []hts.Effect) error {
	if err := c.Apply(effects...); err != nil {
		return err
	}
	c.records = append(c.records, record)
	return nil
}

// Apply adds effects not produced by a precompile call, such as plain value
// transfers between accounts.
func (c *Coordinator) Apply(effects ...hts.Effect) error {
	mark := c.overlay.CreateSnapshot()
	if err := hts.ApplyEffects(c.overlay, effects...); err != nil {
		c.overlay.RestoreSnapshot(mark)
		return err
	}
	c.effects = append(c.effects, effects...)
	return nil
}

// Snapshot marks the current state so that the effects of a reverting call
// frame can be discarded.
func (c *Coordinator) Snapshot() int {
	c.snapshots = append(c.snapshots, snapshot{
		overlay: c.overlay.CreateSnapshot(),
		records: len(c.records),
		effects: len(c.effects),
	})
	return len(c.snapshots) - 1
}

// RevertToSnapshot discards all effects added since the given snapshot was
// taken. The records are kept; successful ones report RevertedSuccess.
// Snapshots taken after the given one become invalid.
func (c *Coordinator) RevertToSnapshot(id int) {
	s := c.snapshots[id]
	c.overlay.RestoreSnapshot(s.overlay)
	c.effects = c.effects[:s.effects]
	markReverted(c.records[s.records:])
	c.snapshots = c.snapshots[:id]
}

func markReverted(records []hts.ChildRecord) {
	for i := range records {
		if records[i].Status.IsSuccess() {
			records[i].Status = hts.RevertedSuccess
		}
	}
}

// Records returns the child records in dispatch order.
func (c *Coordinator) Records() []hts.ChildRecord {
	return c.records
}

// Effects returns the surviving pending effects in dispatch order.
func (c *Coordinator) Effects() []hts.Effect {
	return c.effects
}

// Finalize ends the transaction. If committed, all surviving effects are
// applied to the ledger in order; otherwise they are discarded and all
// successful records report RevertedSuccess.
func (c *Coordinator) Finalize(committed bool, ledger hts.Ledger) error {
	if !committed {
		markReverted(c.records)
		c.effects = nil
		return nil
	}
	if err := hts.ApplyEffects(ledger, c.effects...); err != nil {
		return fmt.Errorf("failed to commit transaction effects: %w", err)
	}
	return nil
}
