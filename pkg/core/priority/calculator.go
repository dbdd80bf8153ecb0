// Package priority implements the per-candidate priority calculation.
// Everything here is pure: the calculator receives full roster and history
// snapshots as arguments, performs no I/O and is deterministic.
package priority

import "github.com/harukisb/raidloot/pkg/core/model"

const (
	// Score bands. Bands dominate the per-position spread (at most 8) and
	// the dynamic priority penalty, so a need never loses to a greed and a
	// weapon never loses to armor.

	// BandNeed is the base score for a priority-policy equipment claim.
	BandNeed = 1000

	// BandGreed is the base score for a normal-policy claim.
	BandGreed = 500

	// BandWeaponBox is the base score for a priority-policy weapon box
	// claim. The weapon box outranks all armor.
	BandWeaponBox = 2000

	// BandDirectWish is the base score for a direct weapon wish match.
	BandDirectWish = 3000

	// WishRankPenalty is subtracted per wish rank, so a first wish always
	// beats a second wish regardless of position spread.
	WishRankPenalty = 100
)

// Reason codes shown to the operator next to each candidate.
const (
	ReasonPriority          = "優先設定・未取得"
	ReasonNormal            = "通常設定・未取得"
	ReasonExcluded          = "取得設定対象外"
	ReasonAlreadyHeld       = "取得済"
	ReasonExchangedWaiting  = "断章交換済（他に未取得の優先者あり）"
	ReasonExchangedRevived  = "断章交換分の復活"
	ReasonFullySatisfied    = "断章交換・箱取得済"
	ReasonMaterialNeeded    = "素材未取得"
	ReasonDirectDropWaiting = "直ドロ入手済（武器箱未取得者あり）"
	ReasonDirectDropRevived = "直ドロ入手済・武器箱復活"
	ReasonFirstWish         = "第一希望"
	ReasonSecondWish        = "第二希望"
	ReasonNoWish            = "希望未登録"
	ReasonNoWeaponSelected  = "武器未選択"
)

// Calculate computes the priority of one roster member for one drop.
// Roster and history are read-only snapshots; they are consulted for the
// revival rules, which depend on the state of the other seven players.
func Calculate(
	pos model.Position,
	player model.Player,
	drop model.Drop,
	roster model.Roster,
	history model.History,
	priorities model.PriorityTable,
) model.Candidate {
	c := model.Candidate{Position: pos, Player: player}

	switch drop.Kind {
	case model.KindEquipment, model.KindMount:
		calculateEquipment(&c, drop, roster, history, priorities)
	case model.KindMaterial:
		calculateMaterial(&c, drop, history, priorities)
	case model.KindWeaponBox:
		calculateWeaponBox(&c, roster, history, priorities)
	case model.KindDirectWeapon:
		calculateDirectWeapon(&c, drop, history, priorities)
	default:
		pass(&c, ReasonExcluded)
	}

	return c
}

// calculateEquipment scores armor, accessory and mount drops by slot policy.
func calculateEquipment(c *model.Candidate, drop model.Drop, roster model.Roster, history model.History, priorities model.PriorityTable) {
	status := history.StatusFor(c.Position, drop.Slot)

	switch {
	case status == model.StatusExchangedObtained:
		pass(c, ReasonFullySatisfied)

	case status == model.StatusExchanged:
		// A deferred claim waits while any other priority holder on this
		// slot is still unobtained, then revives at the need band.
		if otherPriorityHoldersUnobtained(c.Position, drop.Slot, roster, history) {
			pass(c, ReasonExchangedWaiting)
			return
		}
		need(c, BandNeed, ReasonExchangedRevived, priorities)

	case status != model.StatusUnobtained:
		pass(c, ReasonAlreadyHeld)

	default:
		scoreByPolicy(c, drop.Slot, BandNeed, BandGreed, priorities)
	}
}

// calculateMaterial scores upgrade materials. No band offset: materials
// never outrank equipment.
func calculateMaterial(c *model.Candidate, drop model.Drop, history model.History, priorities model.PriorityTable) {
	switch history.StatusFor(c.Position, drop.Slot) {
	case model.StatusExchanged, model.StatusExchangedObtained:
		pass(c, ReasonFullySatisfied)
	case model.StatusUnobtained:
		need(c, 0, ReasonMaterialNeeded, priorities)
	default:
		pass(c, ReasonAlreadyHeld)
	}
}

// calculateWeaponBox scores the guaranteed weapon box by weapon slot policy,
// with revival paths for tome exchanges and direct drop wins.
func calculateWeaponBox(c *model.Candidate, roster model.Roster, history model.History, priorities model.PriorityTable) {
	status := history.StatusFor(c.Position, model.SlotWeaponBox)

	switch {
	case status == model.StatusExchangedObtained || status == model.StatusDirectDropObtained:
		pass(c, ReasonFullySatisfied)

	case status == model.StatusExchanged:
		if otherPriorityHoldersUnobtained(c.Position, model.SlotWeaponBox, roster, history) {
			pass(c, ReasonExchangedWaiting)
			return
		}
		need(c, BandWeaponBox, ReasonExchangedRevived, priorities)

	case status == model.StatusDirectDrop:
		// A direct drop winner yields the box until no other weapon box
		// remains fully unobtained, then the box revives by policy.
		if otherWeaponBoxesUnobtained(c.Position, roster, history) {
			pass(c, ReasonDirectDropWaiting)
			return
		}
		if c.Player.PolicyFor(model.SlotWeapon) == model.PolicyExcluded {
			pass(c, ReasonExcluded)
			return
		}
		scoreByPolicyWithReason(c, BandWeaponBox, BandGreed, ReasonDirectDropRevived, priorities)

	case status != model.StatusUnobtained:
		pass(c, ReasonAlreadyHeld)

	default:
		scoreByPolicy(c, model.SlotWeapon, BandWeaponBox, BandGreed, priorities)
	}
}

// calculateDirectWeapon scores the random direct weapon drop purely by the
// player's ranked weapon wishes; slot policies are ignored.
func calculateDirectWeapon(c *model.Candidate, drop model.Drop, history model.History, priorities model.PriorityTable) {
	if drop.Weapon == "" {
		pass(c, ReasonNoWeaponSelected)
		return
	}

	// Any recorded weapon box status means the weapon requirement is
	// settled one way or another; only fully unobtained players compete.
	if history.StatusFor(c.Position, model.SlotWeaponBox) != model.StatusUnobtained {
		pass(c, ReasonAlreadyHeld)
		return
	}

	rank := c.Player.WishRank(drop.Weapon)
	if rank < 0 {
		pass(c, ReasonNoWish)
		return
	}

	reason := ReasonFirstWish
	if rank > 0 {
		reason = ReasonSecondWish
	}

	c.CanReceive = true
	c.Category = model.CategoryNeed
	c.Score = BandDirectWish + priorities.BasePriority(c.Position) - rank*WishRankPenalty - c.Player.DynamicPriority
	c.Reason = reason
}

// scoreByPolicy applies the standard policy branch for an unobtained slot.
func scoreByPolicy(c *model.Candidate, policySlot model.Slot, needBand, greedBand int, priorities model.PriorityTable) {
	switch c.Player.PolicyFor(policySlot) {
	case model.PolicyPriority:
		need(c, needBand, ReasonPriority, priorities)
	case model.PolicyNormal:
		greed(c, greedBand, ReasonNormal, priorities)
	default:
		pass(c, ReasonExcluded)
	}
}

// scoreByPolicyWithReason is scoreByPolicy with a fixed reason, used by the
// direct drop revival path. The excluded policy is rejected by the caller.
func scoreByPolicyWithReason(c *model.Candidate, needBand, greedBand int, reason string, priorities model.PriorityTable) {
	switch c.Player.PolicyFor(model.SlotWeapon) {
	case model.PolicyPriority:
		need(c, needBand, reason, priorities)
	default:
		greed(c, greedBand, reason, priorities)
	}
}

func need(c *model.Candidate, band int, reason string, priorities model.PriorityTable) {
	c.CanReceive = true
	c.Category = model.CategoryNeed
	c.Score = band + priorities.BasePriority(c.Position) - c.Player.DynamicPriority
	c.Reason = reason
}

func greed(c *model.Candidate, band int, reason string, priorities model.PriorityTable) {
	c.CanReceive = true
	c.Category = model.CategoryGreed
	c.Score = band + priorities.BasePriority(c.Position) - c.Player.DynamicPriority
	c.Reason = reason
}

func pass(c *model.Candidate, reason string) {
	c.CanReceive = false
	c.Category = model.CategoryPass
	c.Score = 0
	c.Reason = reason
}

// otherPriorityHoldersUnobtained reports whether any other player with a
// priority policy on the slot is still unobtained. While one exists, a
// deferred (exchanged) claim must keep waiting.
func otherPriorityHoldersUnobtained(self model.Position, slot model.Slot, roster model.Roster, history model.History) bool {
	policySlot := slot
	if slot == model.SlotWeaponBox {
		policySlot = model.SlotWeapon
	}
	for pos, player := range roster {
		if pos == self {
			continue
		}
		if player.PolicyFor(policySlot) != model.PolicyPriority {
			continue
		}
		if history.StatusFor(pos, slot) == model.StatusUnobtained {
			return true
		}
	}
	return false
}

// otherWeaponBoxesUnobtained reports whether any other player's weapon box
// is still fully unobtained, regardless of policy.
func otherWeaponBoxesUnobtained(self model.Position, roster model.Roster, history model.History) bool {
	for pos := range roster {
		if pos == self {
			continue
		}
		if history.StatusFor(pos, model.SlotWeaponBox) == model.StatusUnobtained {
			return true
		}
	}
	return false
}
