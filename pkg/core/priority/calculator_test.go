package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukisb/raidloot/pkg/core/model"
)

// testRoster builds a default 8-player roster with all-normal policies.
func testRoster() model.Roster {
	jobs := map[model.Position]model.Job{
		model.PositionMT: model.JobPaladin,
		model.PositionST: model.JobWarrior,
		model.PositionH1: model.JobWhiteMage,
		model.PositionH2: model.JobScholar,
		model.PositionD1: model.JobSamurai,
		model.PositionD2: model.JobReaper,
		model.PositionD3: model.JobBard,
		model.PositionD4: model.JobBlackMage,
	}

	roster := make(model.Roster, len(jobs))
	for pos, job := range jobs {
		roster[pos] = model.Player{
			Name:     string(pos) + "さん",
			Job:      job,
			Policies: map[model.Slot]model.Policy{},
		}
	}
	return roster
}

func testPriorities(t *testing.T) model.PriorityTable {
	t.Helper()
	table, err := model.NewPriorityTable(model.DefaultPriorityOrder())
	require.NoError(t, err)
	return table
}

func record(pos model.Position, slot model.Slot, status model.Status, order int) model.AllocationRecord {
	return model.AllocationRecord{
		Position:  pos,
		Slot:      slot,
		Status:    status,
		Layer:     1,
		Week:      1,
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(order) * time.Hour),
	}
}

func headDrop() model.Drop {
	return model.Drop{Name: "頭装備", Slot: model.SlotHead, Kind: model.KindEquipment}
}

func TestCalculate_EquipmentNormalPolicy(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	c := Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, nil, prio)

	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryGreed, c.Category)
	assert.Equal(t, BandGreed+8, c.Score)
	assert.Equal(t, ReasonNormal, c.Reason)
}

func TestCalculate_EquipmentPriorityPolicy(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	d1 := roster[model.PositionD1]
	d1.Policies[model.SlotHead] = model.PolicyPriority
	roster[model.PositionD1] = d1

	c := Calculate(model.PositionD1, d1, headDrop(), roster, nil, prio)

	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryNeed, c.Category)
	assert.Equal(t, BandNeed+8, c.Score)
}

func TestCalculate_EquipmentExcludedPolicy(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	h2 := roster[model.PositionH2]
	h2.Policies[model.SlotHead] = model.PolicyExcluded
	roster[model.PositionH2] = h2

	c := Calculate(model.PositionH2, h2, headDrop(), roster, nil, prio)

	assert.False(t, c.CanReceive)
	assert.Equal(t, model.CategoryPass, c.Category)
	assert.Equal(t, ReasonExcluded, c.Reason)
}

func TestCalculate_EquipmentAlreadyObtained(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)
	history := model.History{record(model.PositionD1, model.SlotHead, model.StatusObtained, 0)}

	c := Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, history, prio)

	assert.False(t, c.CanReceive)
	assert.Equal(t, model.CategoryPass, c.Category)
	assert.Equal(t, ReasonAlreadyHeld, c.Reason)
}

// The revival rule: an exchanged claim waits while any other priority holder
// on the slot is still unobtained, and revives at the need band the moment
// none remains.
func TestCalculate_ExchangedRevival(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	mt := roster[model.PositionMT]
	mt.Policies[model.SlotHead] = model.PolicyPriority
	roster[model.PositionMT] = mt

	history := model.History{record(model.PositionD1, model.SlotHead, model.StatusExchanged, 0)}

	// MT (priority, unobtained) blocks D1's revival.
	c := Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, history, prio)
	assert.False(t, c.CanReceive)
	assert.Equal(t, ReasonExchangedWaiting, c.Reason)

	// MT obtains their head piece; D1 revives at the need band.
	history = append(history, record(model.PositionMT, model.SlotHead, model.StatusObtained, 1))
	c = Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, history, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryNeed, c.Category)
	assert.Equal(t, BandNeed+8, c.Score)
	assert.Equal(t, ReasonExchangedRevived, c.Reason)
}

func TestCalculate_ExchangedNotBlockedByNormalHolders(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	// Everyone else is normal policy, so the exchanged claim revives even
	// though nobody has the piece yet.
	history := model.History{record(model.PositionD1, model.SlotHead, model.StatusExchanged, 0)}

	c := Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, history, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryNeed, c.Category)
}

func TestCalculate_ExchangedObtainedIsTerminal(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)
	history := model.History{record(model.PositionD1, model.SlotHead, model.StatusExchangedObtained, 0)}

	c := Calculate(model.PositionD1, roster[model.PositionD1], headDrop(), roster, history, prio)
	assert.False(t, c.CanReceive)
	assert.Equal(t, ReasonFullySatisfied, c.Reason)
}

func TestCalculate_Material(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)
	drop := model.Drop{Name: "硬化薬", Slot: model.SlotHardeningAgent, Kind: model.KindMaterial}

	c := Calculate(model.PositionD2, roster[model.PositionD2], drop, roster, nil, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryNeed, c.Category)
	// No band offset: materials never outrank equipment.
	assert.Equal(t, 7, c.Score)

	history := model.History{record(model.PositionD2, model.SlotHardeningAgent, model.StatusObtained, 0)}
	c = Calculate(model.PositionD2, roster[model.PositionD2], drop, roster, history, prio)
	assert.False(t, c.CanReceive)
}

func TestCalculate_MountScoredAsEquipment(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)
	drop := model.Drop{Name: "マウント", Slot: model.SlotMount, Kind: model.KindMount}

	c := Calculate(model.PositionH1, roster[model.PositionH1], drop, roster, nil, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryGreed, c.Category)
	assert.Equal(t, BandGreed+2, c.Score)
}

func weaponBoxDrop() model.Drop {
	return model.Drop{Name: "武器箱", Slot: model.SlotWeaponBox, Kind: model.KindWeaponBox}
}

func TestCalculate_WeaponBoxBands(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	mt := roster[model.PositionMT]
	mt.Policies[model.SlotWeapon] = model.PolicyPriority
	roster[model.PositionMT] = mt

	c := Calculate(model.PositionMT, mt, weaponBoxDrop(), roster, nil, prio)
	assert.Equal(t, model.CategoryNeed, c.Category)
	assert.Equal(t, BandWeaponBox+4, c.Score)

	c = Calculate(model.PositionST, roster[model.PositionST], weaponBoxDrop(), roster, nil, prio)
	assert.Equal(t, model.CategoryGreed, c.Category)
	assert.Equal(t, BandGreed+3, c.Score)
}

func TestCalculate_WeaponBoxDirectDropRevival(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	// D1 won a direct drop; D2's box is still fully unobtained.
	history := model.History{record(model.PositionD1, model.SlotWeaponBox, model.StatusDirectDrop, 0)}

	c := Calculate(model.PositionD1, roster[model.PositionD1], weaponBoxDrop(), roster, history, prio)
	assert.False(t, c.CanReceive)
	assert.Equal(t, ReasonDirectDropWaiting, c.Reason)

	// Every other box gets settled; D1's box revives at the greed band
	// (normal weapon policy).
	for i, pos := range model.Positions() {
		if pos == model.PositionD1 {
			continue
		}
		history = append(history, record(pos, model.SlotWeaponBox, model.StatusObtained, i+1))
	}

	c = Calculate(model.PositionD1, roster[model.PositionD1], weaponBoxDrop(), roster, history, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryGreed, c.Category)
	assert.Equal(t, BandGreed+8, c.Score)
	assert.Equal(t, ReasonDirectDropRevived, c.Reason)
}

func TestCalculate_WeaponBoxTerminalStatuses(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	for _, status := range []model.Status{model.StatusExchangedObtained, model.StatusDirectDropObtained} {
		history := model.History{record(model.PositionD1, model.SlotWeaponBox, status, 0)}
		c := Calculate(model.PositionD1, roster[model.PositionD1], weaponBoxDrop(), roster, history, prio)
		assert.False(t, c.CanReceive, "status %s", status)
		assert.Equal(t, model.CategoryPass, c.Category)
	}
}

func directDrop(weapon model.Job) model.Drop {
	return model.Drop{Name: "直ドロップ武器", Slot: model.SlotDirectWeapon, Kind: model.KindDirectWeapon, Weapon: weapon}
}

func TestCalculate_DirectWeaponWishes(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	// MT's first wish defaults to their own job's weapon.
	c := Calculate(model.PositionMT, roster[model.PositionMT], directDrop(model.JobPaladin), roster, nil, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, model.CategoryNeed, c.Category)
	assert.Equal(t, BandDirectWish+4, c.Score)
	assert.Equal(t, ReasonFirstWish, c.Reason)

	// ST wished for the paladin weapon second.
	st := roster[model.PositionST]
	st.WeaponWishes = []model.Job{model.JobWarrior, model.JobPaladin}
	roster[model.PositionST] = st

	c = Calculate(model.PositionST, st, directDrop(model.JobPaladin), roster, nil, prio)
	assert.True(t, c.CanReceive)
	assert.Equal(t, BandDirectWish+3-WishRankPenalty, c.Score)
	assert.Equal(t, ReasonSecondWish, c.Reason)

	// No wish registered for this weapon.
	c = Calculate(model.PositionH1, roster[model.PositionH1], directDrop(model.JobPaladin), roster, nil, prio)
	assert.False(t, c.CanReceive)
	assert.Equal(t, ReasonNoWish, c.Reason)
}

func TestCalculate_DirectWeaponNoSelection(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	c := Calculate(model.PositionMT, roster[model.PositionMT], directDrop(""), roster, nil, prio)
	assert.False(t, c.CanReceive)
	assert.Equal(t, ReasonNoWeaponSelected, c.Reason)
}

// A settled weapon box status of any kind excludes the player from direct
// weapon drops regardless of wish match.
func TestCalculate_DirectWeaponExclusivity(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	statuses := []model.Status{
		model.StatusObtained,
		model.StatusExchanged,
		model.StatusExchangedObtained,
		model.StatusDirectDrop,
		model.StatusDirectDropObtained,
	}
	for _, status := range statuses {
		history := model.History{record(model.PositionMT, model.SlotWeaponBox, status, 0)}
		c := Calculate(model.PositionMT, roster[model.PositionMT], directDrop(model.JobPaladin), roster, history, prio)
		assert.False(t, c.CanReceive, "status %s", status)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)
	history := model.History{record(model.PositionMT, model.SlotHead, model.StatusExchanged, 0)}

	first := Calculate(model.PositionMT, roster[model.PositionMT], headDrop(), roster, history, prio)
	second := Calculate(model.PositionMT, roster[model.PositionMT], headDrop(), roster, history, prio)

	assert.Equal(t, first, second)
}

// For two otherwise identical players, the one with the larger dynamic
// priority always scores strictly lower.
func TestCalculate_DynamicPriorityMonotonic(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	drops := []model.Drop{
		headDrop(),
		{Name: "硬化薬", Slot: model.SlotHardeningAgent, Kind: model.KindMaterial},
		weaponBoxDrop(),
		directDrop(model.JobSamurai),
	}

	for _, drop := range drops {
		base := roster[model.PositionD1]
		base.DynamicPriority = 1
		penalized := base
		penalized.DynamicPriority = 5

		low := Calculate(model.PositionD1, base, drop, roster, nil, prio)
		high := Calculate(model.PositionD1, penalized, drop, roster, nil, prio)

		require.True(t, low.CanReceive, "drop %s", drop.Name)
		assert.Less(t, high.Score, low.Score, "drop %s", drop.Name)
	}
}

// canReceive and category must always agree: eligible candidates are need or
// greed, ineligible candidates are pass.
func TestCalculate_CategoryCoherence(t *testing.T) {
	roster := testRoster()
	prio := testPriorities(t)

	statuses := []model.Status{
		model.StatusUnobtained, model.StatusObtained,
		model.StatusExchanged, model.StatusExchangedObtained,
	}
	policies := []model.Policy{model.PolicyPriority, model.PolicyNormal, model.PolicyExcluded}

	for _, status := range statuses {
		for _, policy := range policies {
			d1 := roster[model.PositionD1]
			d1.Policies[model.SlotHead] = policy
			roster[model.PositionD1] = d1

			var history model.History
			if status != model.StatusUnobtained {
				history = model.History{record(model.PositionD1, model.SlotHead, status, 0)}
			}

			c := Calculate(model.PositionD1, d1, headDrop(), roster, history, prio)
			if c.CanReceive {
				assert.Contains(t, []model.Category{model.CategoryNeed, model.CategoryGreed}, c.Category,
					"status %s policy %s", status, policy)
			} else {
				assert.Equal(t, model.CategoryPass, c.Category, "status %s policy %s", status, policy)
			}
		}
	}
}
