package model

// Slot identifies an equipment slot or a material pseudo-slot. Slot values
// are persisted inside allocation records, so they are stable identifiers.
type Slot string

const (
	SlotWeapon   Slot = "weapon"
	SlotHead     Slot = "head"
	SlotBody     Slot = "body"
	SlotHands    Slot = "hands"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
	SlotEarring  Slot = "earring"
	SlotNecklace Slot = "necklace"
	SlotBracelet Slot = "bracelet"
	SlotRing     Slot = "ring"

	// Material and bonus pseudo-slots. They never appear in a policy map
	// but allocation history is keyed on them like any other slot.
	SlotWeaponStone        Slot = "weapon_stone"
	SlotHardeningAgent     Slot = "hardening_agent"
	SlotStrengtheningAgent Slot = "strengthening_agent"
	SlotStrengtheningFiber Slot = "strengthening_fiber"
	SlotMount              Slot = "mount"

	// SlotWeaponBox tracks the guaranteed weapon box. Both the box itself
	// and the random direct weapon drop record their status under this key.
	SlotWeaponBox Slot = "weapon_box"

	// SlotDirectWeapon keys the direct weapon drop inside a layer result.
	// Confirmed direct drops are recorded under SlotWeaponBox instead.
	SlotDirectWeapon Slot = "direct_weapon"
)

var slotNames = map[Slot]string{
	SlotWeapon:             "武器",
	SlotHead:               "頭",
	SlotBody:               "胴",
	SlotHands:              "手",
	SlotLegs:               "脚",
	SlotFeet:               "足",
	SlotEarring:            "耳飾り",
	SlotNecklace:           "首飾り",
	SlotBracelet:           "腕輪",
	SlotRing:               "指輪",
	SlotWeaponStone:        "武器石",
	SlotHardeningAgent:     "硬化薬",
	SlotStrengtheningAgent: "強化薬",
	SlotStrengtheningFiber: "強化繊維",
	SlotMount:              "マウント",
	SlotWeaponBox:          "武器箱",
	SlotDirectWeapon:       "直ドロップ武器",
}

func (s Slot) IsValid() bool {
	_, ok := slotNames[s]
	return ok
}

// DisplayName returns the Japanese display name of the slot.
func (s Slot) DisplayName() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return string(s)
}

// EquipmentSlots returns the 10 slots a player carries a policy for.
func EquipmentSlots() []Slot {
	return []Slot{
		SlotWeapon, SlotHead, SlotBody, SlotHands, SlotLegs, SlotFeet,
		SlotEarring, SlotNecklace, SlotBracelet, SlotRing,
	}
}
