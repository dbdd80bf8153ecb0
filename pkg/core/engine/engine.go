// Package engine orchestrates the priority calculator over a roster
// snapshot: it ranks candidates per drop, resolves the winner-selection
// special cases and turns operator picks into allocation record batches.
//
// The engine is synchronous and side-effect free. It reads the roster and
// history snapshots it was constructed with and never mutates them;
// persisting a confirmation is the caller's job.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/harukisb/raidloot/pkg/core/catalog"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/core/priority"
)

// AllocationResult is the computed outcome for one drop.
type AllocationResult struct {
	Drop model.Drop

	// Candidates is the full per-position result list, sorted by score
	// descending, ties broken by canonical position priority order.
	Candidates []model.Candidate

	// Recommended is the engine's pick, or nil when no candidate is
	// eligible, no weapon has been selected yet, or a manual tie-break
	// is required.
	Recommended *model.Candidate

	// IsMultipleRecommended is set when several second-wish claimants tie
	// for a direct weapon drop. The engine refuses to pick among them;
	// MultipleRecommended holds the tied candidates for a manual choice.
	IsMultipleRecommended bool
	MultipleRecommended   []model.Candidate

	// NoWeaponSelected is set for a direct weapon drop whose weapon the
	// operator has not chosen yet. It is a normal state, not an error.
	NoWeaponSelected bool
}

// Selections maps a result slot to the position the operator picked for it.
// Slots absent from the map (or mapped to the empty position) are discarded.
type Selections map[model.Slot]model.Position

// Confirmation is the persistable outcome of confirming operator picks:
// the records to append and the dynamic priority increments to apply.
// Both must be written in one atomic batch.
type Confirmation struct {
	Records        []model.AllocationRecord
	PriorityDeltas map[model.Position]int
}

// Dynamic priority weights per received slot. Heavier pieces cost more
// future priority.
const (
	weightWeapon   = 3
	weightBodyLegs = 2
	weightDefault  = 1
)

// Engine computes allocations over immutable roster and history snapshots.
type Engine struct {
	roster     model.Roster
	history    model.History
	priorities model.PriorityTable
}

// New validates the roster snapshot and builds an engine over it.
func New(roster model.Roster, history model.History, priorities model.PriorityTable) (*Engine, error) {
	if err := roster.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}
	if len(priorities) != len(model.Positions()) {
		return nil, fmt.Errorf("priority table must cover all %d positions", len(model.Positions()))
	}
	return &Engine{roster: roster, history: history, priorities: priorities}, nil
}

// FindCandidates runs the priority calculator over every roster member for
// one drop and returns the full list sorted by score descending. Equal
// scores keep canonical position priority order.
func (e *Engine) FindCandidates(drop model.Drop) ([]model.Candidate, error) {
	if !drop.Slot.IsValid() {
		return nil, fmt.Errorf("unknown slot %q", drop.Slot)
	}
	if !drop.Kind.IsValid() {
		return nil, fmt.Errorf("unknown drop kind %q", drop.Kind)
	}

	candidates := make([]model.Candidate, 0, len(e.roster))
	for _, pos := range e.priorities.Order() {
		player, ok := e.roster[pos]
		if !ok {
			return nil, fmt.Errorf("roster is missing position %s", pos)
		}
		candidates = append(candidates, priority.Calculate(pos, player, drop, e.roster, e.history, e.priorities))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates, nil
}

// SelectWinner applies the drop-kind-specific recommendation rules to a
// sorted candidate list.
func (e *Engine) SelectWinner(drop model.Drop, candidates []model.Candidate) AllocationResult {
	result := AllocationResult{Drop: drop, Candidates: candidates}

	if drop.Kind == model.KindDirectWeapon && drop.Weapon == "" {
		result.NoWeaponSelected = true
		return result
	}

	eligible := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.CanReceive {
			eligible = append(eligible, c)
		}
	}

	if drop.Kind != model.KindDirectWeapon {
		if len(eligible) > 0 {
			result.Recommended = &eligible[0]
		}
		return result
	}

	// Direct weapon: first wishes win outright; a single second-wish
	// claimant wins by default; several tied second-wish claimants are a
	// manual decision the engine refuses to make.
	var firstWish, otherWish []model.Candidate
	for _, c := range eligible {
		if c.Player.WishRank(drop.Weapon) == 0 {
			firstWish = append(firstWish, c)
		} else {
			otherWish = append(otherWish, c)
		}
	}

	switch {
	case len(firstWish) > 0:
		result.Recommended = &firstWish[0]
	case len(otherWish) == 1:
		result.Recommended = &otherWish[0]
	case len(otherWish) > 1:
		result.IsMultipleRecommended = true
		result.MultipleRecommended = otherWish
	}

	return result
}

// ProcessLayer computes the allocation result for every drop of a layer.
// A layer with no catalog entries yields an empty map, not an error.
func (e *Engine) ProcessLayer(layer int, selectedWeapon model.Job) (map[model.Slot]AllocationResult, error) {
	results := make(map[model.Slot]AllocationResult)

	for _, entry := range catalog.Drops(layer) {
		drop := entry.Drop(selectedWeapon)
		candidates, err := e.FindCandidates(drop)
		if err != nil {
			return nil, fmt.Errorf("drop %s: %w", drop.Name, err)
		}
		results[drop.Slot] = e.SelectWinner(drop, candidates)
	}

	return results, nil
}

// BuildConfirmation turns the operator's final picks into an allocation
// record batch. Selections referencing slots not present in results are
// ignored as operator no-ops. The new record's status carries forward any
// deferred claim (exchange, direct drop) so the promotion to the satisfied
// status lands in the same batch as the allocation itself.
func (e *Engine) BuildConfirmation(
	layer, week int,
	results map[model.Slot]AllocationResult,
	selections Selections,
	now time.Time,
) Confirmation {
	confirmation := Confirmation{
		Records:        []model.AllocationRecord{},
		PriorityDeltas: make(map[model.Position]int),
	}

	// Walk slots in a fixed order so record order is deterministic.
	for _, entry := range catalog.Drops(layer) {
		pos, ok := selections[entry.Slot]
		if !ok || pos == "" {
			continue
		}
		result, ok := results[entry.Slot]
		if !ok {
			continue
		}

		recordSlot := recordSlotFor(result.Drop)
		record := model.AllocationRecord{
			Position:  pos,
			Slot:      recordSlot,
			Status:    nextStatus(result.Drop.Kind, e.history.StatusFor(pos, recordSlot)),
			Layer:     layer,
			Week:      week,
			Timestamp: now,
		}
		if result.Drop.Kind == model.KindDirectWeapon {
			record.Weapon = result.Drop.Weapon
		}

		confirmation.Records = append(confirmation.Records, record)
		confirmation.PriorityDeltas[pos] += slotWeight(recordSlot)
	}

	return confirmation
}

// recordSlotFor maps a drop to the slot its history record is keyed on.
// Direct weapon drops settle the weapon box claim.
func recordSlotFor(drop model.Drop) model.Slot {
	if drop.Kind == model.KindDirectWeapon {
		return model.SlotWeaponBox
	}
	return drop.Slot
}

// nextStatus derives the status of a new allocation record from the
// receiver's previous status for the same slot.
func nextStatus(kind model.DropKind, previous model.Status) model.Status {
	if kind == model.KindDirectWeapon {
		return model.StatusDirectDrop
	}
	switch previous {
	case model.StatusExchanged:
		return model.StatusExchangedObtained
	case model.StatusDirectDrop:
		return model.StatusDirectDropObtained
	default:
		return model.StatusObtained
	}
}

// slotWeight returns the dynamic priority increment for receiving a slot.
func slotWeight(slot model.Slot) int {
	switch slot {
	case model.SlotWeapon, model.SlotWeaponBox:
		return weightWeapon
	case model.SlotBody, model.SlotLegs:
		return weightBodyLegs
	default:
		return weightDefault
	}
}
