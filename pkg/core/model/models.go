package model

import (
	"fmt"
	"time"
)

// DropKind classifies how a drop is scored.
type DropKind string

const (
	// KindEquipment covers armor and accessory drops, allocated by slot policy.
	KindEquipment DropKind = "equipment"

	// KindMaterial covers upgrade materials. Materials never outrank equipment.
	KindMaterial DropKind = "material"

	// KindWeaponBox is the guaranteed weapon coffer, allocated by weapon
	// slot policy at a higher band than armor.
	KindWeaponBox DropKind = "weapon_box"

	// KindDirectWeapon is the random extra weapon drop, allocated purely by
	// ranked weapon wishes.
	KindDirectWeapon DropKind = "direct_weapon"

	// KindMount is the bonus mount drop. It is scored exactly like equipment
	// against its own pseudo-slot.
	KindMount DropKind = "mount"
)

func (k DropKind) IsValid() bool {
	switch k {
	case KindEquipment, KindMaterial, KindWeaponBox, KindDirectWeapon, KindMount:
		return true
	}
	return false
}

// Drop is one lootable item of a layer.
type Drop struct {
	Name string
	Slot Slot
	Kind DropKind

	// Weapon is the job whose weapon actually dropped this run. Only
	// meaningful for KindDirectWeapon; empty means the operator has not
	// selected one yet.
	Weapon Job
}

// Player is one roster member. Player data is read-only to the engine
// except DynamicPriority, which confirmation increments.
type Player struct {
	Name string
	Job  Job

	// Policies maps each equipment slot to the player's declared policy.
	// A missing slot is treated as PolicyNormal.
	Policies map[Slot]Policy

	// WeaponWishes holds up to two ranked weapon wishes. An empty list
	// means the player wishes for their own job's weapon.
	WeaponWishes []Job

	// DynamicPriority accumulates every time the player receives an item.
	// Larger values mean lower future priority.
	DynamicPriority int
}

// PolicyFor returns the player's policy for a slot, defaulting to normal.
func (p Player) PolicyFor(slot Slot) Policy {
	if policy, ok := p.Policies[slot]; ok {
		return policy
	}
	return PolicyNormal
}

// Wishes returns the player's effective ranked weapon wishes, applying the
// own-job default when none are registered.
func (p Player) Wishes() []Job {
	if len(p.WeaponWishes) == 0 {
		return []Job{p.Job}
	}
	return p.WeaponWishes
}

// WishRank returns the zero-based rank of the given weapon in the player's
// wishes, or -1 if the player did not wish for it.
func (p Player) WishRank(weapon Job) int {
	for i, wish := range p.Wishes() {
		if wish == weapon {
			return i
		}
	}
	return -1
}

// Roster is the full 8-position party of one raid tier.
type Roster map[Position]Player

// Validate checks the roster for shape errors. A missing position would
// silently exclude a real player from loot consideration, so it is an error.
func (r Roster) Validate() error {
	for _, pos := range Positions() {
		player, ok := r[pos]
		if !ok {
			return fmt.Errorf("roster is missing position %s", pos)
		}
		if !player.Job.IsValid() {
			return fmt.Errorf("position %s has unknown job %q", pos, player.Job)
		}
		if player.Job.Role() != pos.Role() {
			return fmt.Errorf("position %s (%s) cannot be played by %s (%s)",
				pos, pos.Role(), player.Job, player.Job.Role())
		}
		for slot, policy := range player.Policies {
			if !isPolicySlot(slot) {
				return fmt.Errorf("position %s has policy for non-equipment slot %q", pos, slot)
			}
			if !policy.IsValid() {
				return fmt.Errorf("position %s has unknown policy %q for slot %s", pos, policy, slot)
			}
		}
	}
	return nil
}

// isPolicySlot reports whether a slot carries a player policy.
func isPolicySlot(slot Slot) bool {
	for _, s := range EquipmentSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// AllocationRecord is one immutable entry of the allocation history: this
// position received this slot in this layer and week, with this status.
type AllocationRecord struct {
	Position  Position
	Slot      Slot
	Status    Status
	Layer     int
	Week      int
	Timestamp time.Time

	// Weapon is set for weapon box records written from a direct drop.
	Weapon Job
}

// History is a snapshot of the allocation history, unordered.
type History []AllocationRecord

// StatusFor returns the active status for a (position, slot) pair: the most
// recent matching record, or StatusUnobtained when none exists.
func (h History) StatusFor(pos Position, slot Slot) Status {
	status := StatusUnobtained
	var latest time.Time
	for _, rec := range h {
		if rec.Position != pos || rec.Slot != slot {
			continue
		}
		if rec.Timestamp.Before(latest) {
			continue
		}
		latest = rec.Timestamp
		status = rec.Status
	}
	return status
}

// Candidate is the per-drop computation result for one roster member.
// Candidates are transient: never persisted, recomputed on every view.
type Candidate struct {
	Position   Position
	Player     Player
	Score      int
	Reason     string
	Category   Category
	CanReceive bool
}
