package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/core/engine"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// fakeDatabase is an in-memory db.Database for service tests. Confirmations
// are applied all-or-nothing, mirroring the postgres transaction.
type fakeDatabase struct {
	members     []db.Member
	policies    []db.Policy
	allocations []db.Allocation

	confirmCalls int
	failConfirm  bool
}

func (f *fakeDatabase) GetMembers(ctx context.Context, tierID string) ([]db.Member, error) {
	return f.members, nil
}

func (f *fakeDatabase) GetPolicies(ctx context.Context, tierID string) ([]db.Policy, error) {
	return f.policies, nil
}

func (f *fakeDatabase) GetAllocations(ctx context.Context, tierID string) ([]db.Allocation, error) {
	return f.allocations, nil
}

func (f *fakeDatabase) ConfirmAllocations(ctx context.Context, tierID string, allocations []db.Allocation, priorityDeltas map[string]int) error {
	f.confirmCalls++
	if f.failConfirm {
		return errors.New("store unavailable")
	}
	f.allocations = append(f.allocations, allocations...)
	for i := range f.members {
		f.members[i].DynamicPriority += priorityDeltas[f.members[i].Position]
	}
	return nil
}

func fakeDB() *fakeDatabase {
	jobs := map[string]string{
		"MT": string(model.JobPaladin),
		"ST": string(model.JobWarrior),
		"H1": string(model.JobWhiteMage),
		"H2": string(model.JobScholar),
		"D1": string(model.JobSamurai),
		"D2": string(model.JobReaper),
		"D3": string(model.JobBard),
		"D4": string(model.JobBlackMage),
	}

	f := &fakeDatabase{}
	for pos, job := range jobs {
		f.members = append(f.members, db.Member{
			TierID:   "tier-1",
			Position: pos,
			Name:     pos + "さん",
			Job:      job,
		})
	}
	return f
}

func testConfig() *config.Config {
	return &config.Config{
		RaidTierID:  "tier-1",
		DatabaseURL: "postgres://localhost/raidloot_test",
		TierStart:   "2026-08-04",
	}
}

func TestProcessLayer_AllGreedScenario(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := ProcessLayer(ctx, fakeDB(), testConfig(), logger, 2, "")
	require.NoError(t, err)

	require.Len(t, result.Results, 5)
	head := result.Results[model.SlotHead]
	require.Len(t, head.Candidates, 8)

	for _, c := range head.Candidates {
		assert.Equal(t, model.CategoryGreed, c.Category)
	}
	require.NotNil(t, head.Recommended)
	assert.Equal(t, model.PositionD1, head.Recommended.Position)
	assert.Equal(t, model.PositionH2, head.Candidates[7].Position)
}

func TestProcessLayer_MissingPositionFailsFast(t *testing.T) {
	ctx := context.Background()
	f := fakeDB()
	f.members = f.members[:6]

	_, err := ProcessLayer(ctx, f, testConfig(), zap.NewNop(), 2, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing position")
}

func TestProcessLayer_UnknownWeapon(t *testing.T) {
	_, err := ProcessLayer(context.Background(), fakeDB(), testConfig(), zap.NewNop(), 4, "アックス")
	require.Error(t, err)
}

func TestConfirmAllocations_WritesOneBatch(t *testing.T) {
	ctx := context.Background()
	f := fakeDB()

	result, err := ConfirmAllocations(ctx, f, testConfig(), zap.NewNop(), 2, "", engine.Selections{
		model.SlotHead:  model.PositionD1,
		model.SlotHands: model.PositionMT,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, f.confirmCalls)
	require.Len(t, f.allocations, 2)
	require.Len(t, result.Records, 2)

	for _, a := range f.allocations {
		assert.Equal(t, "tier-1", a.TierID)
		assert.Equal(t, string(model.StatusObtained), a.Status)
		assert.NotEmpty(t, a.ID)
	}

	// Dynamic priority went up for both winners and nobody else.
	bumped := 0
	for _, m := range f.members {
		if m.DynamicPriority > 0 {
			bumped++
			assert.Equal(t, 1, m.DynamicPriority)
		}
	}
	assert.Equal(t, 2, bumped)
}

func TestConfirmAllocations_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := fakeDB()

	result, err := ConfirmAllocations(ctx, f, testConfig(), zap.NewNop(), 2, "", engine.Selections{
		model.SlotHead: model.PositionD1,
	}, true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	require.Len(t, result.Records, 1)
	assert.Zero(t, f.confirmCalls)
	assert.Empty(t, f.allocations)
}

func TestConfirmAllocations_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := fakeDB()
	f.failConfirm = true

	_, err := ConfirmAllocations(ctx, f, testConfig(), zap.NewNop(), 2, "", engine.Selections{
		model.SlotHead: model.PositionD1,
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Empty(t, f.allocations)
}

func TestBuildHistory_RejectsBadStatus(t *testing.T) {
	_, err := buildHistory([]db.Allocation{{
		ID:       "a1",
		Position: "D1",
		Slot:     string(model.SlotHead),
		Status:   "なんか変な値",
	}})
	require.Error(t, err)
}

func TestBuildHistory_RejectsDirectDropOnArmorSlot(t *testing.T) {
	_, err := buildHistory([]db.Allocation{{
		ID:       "a1",
		Position: "D1",
		Slot:     string(model.SlotHead),
		Status:   string(model.StatusDirectDrop),
	}})
	require.Error(t, err)
}

func TestViewHistory_NewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	f := fakeDB()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	f.allocations = []db.Allocation{
		{ID: "a1", TierID: "tier-1", Position: "D1", Slot: "head", Status: string(model.StatusObtained), Layer: 2, Week: 1, CreatedAt: base},
		{ID: "a2", TierID: "tier-1", Position: "MT", Slot: "body", Status: string(model.StatusObtained), Layer: 3, Week: 2, CreatedAt: base.AddDate(0, 0, 7)},
		{ID: "a3", TierID: "tier-1", Position: "D1", Slot: "legs", Status: string(model.StatusExchanged), Layer: 3, Week: 3, CreatedAt: base.AddDate(0, 0, 14)},
	}

	entries, err := ViewHistory(ctx, f, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.SlotLegs, entries[0].Record.Slot)

	entries, err = ViewHistory(ctx, f, testConfig(), zap.NewNop(), model.PositionD1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, model.PositionD1, e.Record.Position)
	}
}

func TestWeekAt(t *testing.T) {
	cfg := testConfig() // tier starts Tuesday 2026-08-04, weekly Tuesday resets

	week, err := weekAt(cfg, time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, week)

	week, err = weekAt(cfg, time.Date(2026, 8, 11, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, week)

	week, err = weekAt(cfg, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 4, week)

	_, err = weekAt(cfg, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}
