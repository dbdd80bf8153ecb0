// Package catalog holds the static drop table: which items each layer drops
// and how each is allocated. This is versioned game-balance data; a patch
// that changes drops means editing this table.
package catalog

import "github.com/harukisb/raidloot/pkg/core/model"

// Entry is one droppable item of a layer.
type Entry struct {
	Name string
	Slot model.Slot
	Kind model.DropKind
}

var layers = map[int][]Entry{
	1: {
		{Name: "耳飾り", Slot: model.SlotEarring, Kind: model.KindEquipment},
		{Name: "首飾り", Slot: model.SlotNecklace, Kind: model.KindEquipment},
		{Name: "腕輪", Slot: model.SlotBracelet, Kind: model.KindEquipment},
		{Name: "指輪", Slot: model.SlotRing, Kind: model.KindEquipment},
	},
	2: {
		{Name: "頭装備", Slot: model.SlotHead, Kind: model.KindEquipment},
		{Name: "手装備", Slot: model.SlotHands, Kind: model.KindEquipment},
		{Name: "足装備", Slot: model.SlotFeet, Kind: model.KindEquipment},
		{Name: "武器石", Slot: model.SlotWeaponStone, Kind: model.KindMaterial},
		{Name: "硬化薬", Slot: model.SlotHardeningAgent, Kind: model.KindMaterial},
	},
	3: {
		{Name: "胴装備", Slot: model.SlotBody, Kind: model.KindEquipment},
		{Name: "脚装備", Slot: model.SlotLegs, Kind: model.KindEquipment},
		{Name: "強化薬", Slot: model.SlotStrengtheningAgent, Kind: model.KindMaterial},
		{Name: "強化繊維", Slot: model.SlotStrengtheningFiber, Kind: model.KindMaterial},
	},
	4: {
		{Name: "武器箱", Slot: model.SlotWeaponBox, Kind: model.KindWeaponBox},
		{Name: "直ドロップ武器", Slot: model.SlotDirectWeapon, Kind: model.KindDirectWeapon},
		{Name: "マウント", Slot: model.SlotMount, Kind: model.KindMount},
	},
}

// Layers returns the layer numbers that have drop entries, ascending.
func Layers() []int {
	return []int{1, 2, 3, 4}
}

// Drops returns the drop entries for a layer in fixed catalog order.
// Unknown layers return an empty list, not an error.
func Drops(layer int) []Entry {
	entries := layers[layer]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Drop materialises a catalog entry into a drop, attaching the selected
// weapon to direct weapon entries.
func (e Entry) Drop(selectedWeapon model.Job) model.Drop {
	drop := model.Drop{Name: e.Name, Slot: e.Slot, Kind: e.Kind}
	if e.Kind == model.KindDirectWeapon {
		drop.Weapon = selectedWeapon
	}
	return drop
}
