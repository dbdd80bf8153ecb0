package model

import "fmt"

// Policy is a player's declared preference for one equipment slot.
type Policy string

const (
	PolicyPriority Policy = "priority"
	PolicyNormal   Policy = "normal"
	PolicyExcluded Policy = "excluded"
)

func (p Policy) IsValid() bool {
	return p == PolicyPriority || p == PolicyNormal || p == PolicyExcluded
}

// Status is the acquisition state of one (position, slot) pair. The literal
// values are the persisted wire format; renaming one breaks round-tripping
// of in-progress raid tier state.
//
// StatusDirectDrop and StatusDirectDropObtained only ever apply to the
// weapon box slot.
type Status string

const (
	// StatusUnobtained is the implicit default when no record exists.
	StatusUnobtained Status = "未取得"

	// StatusObtained means the item was received normally.
	StatusObtained Status = "取得済"

	// StatusExchanged means the item was traded for tomestone currency
	// instead of taken. The claim is deferred, not forfeited.
	StatusExchanged Status = "断章交換"

	// StatusExchangedObtained means the deferred claim was later satisfied
	// with the real item as well.
	StatusExchangedObtained Status = "断章交換・箱取得済"

	// StatusDirectDrop means the weapon was won through a random direct
	// drop; the guaranteed box has not been taken.
	StatusDirectDrop Status = "直ドロ入手"

	// StatusDirectDropObtained means the box was also taken after a
	// direct drop win.
	StatusDirectDropObtained Status = "直ドロ入手・箱取得済"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusUnobtained, StatusObtained, StatusExchanged, StatusExchangedObtained,
		StatusDirectDrop, StatusDirectDropObtained:
		return true
	}
	return false
}

// ValidForSlot reports whether the status may be recorded against the slot.
// The direct drop statuses belong to the weapon box family only.
func (s Status) ValidForSlot(slot Slot) bool {
	if !s.IsValid() {
		return false
	}
	if s == StatusDirectDrop || s == StatusDirectDropObtained {
		return slot == SlotWeaponBox
	}
	return true
}

// SatisfiedByDirectDrop reports whether the weapon requirement was met by a
// random direct drop rather than the box.
func (s Status) SatisfiedByDirectDrop() bool {
	return s == StatusDirectDrop || s == StatusDirectDropObtained
}

// ParseStatus validates a raw status string read back from a store.
func ParseStatus(raw string, slot Slot) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown allocation status %q", raw)
	}
	if !s.ValidForSlot(slot) {
		return "", fmt.Errorf("status %q is not valid for slot %q", raw, slot)
	}
	return s, nil
}

// Category is the three-tier desire classification of a candidate.
type Category string

const (
	CategoryNeed  Category = "need"
	CategoryGreed Category = "greed"
	CategoryPass  Category = "pass"
)
