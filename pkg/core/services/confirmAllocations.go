package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/core/engine"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// ConfirmResult reports what a confirmation wrote (or would write).
type ConfirmResult struct {
	Layer          int
	Week           int
	Records        []model.AllocationRecord
	PriorityDeltas map[model.Position]int
	DryRun         bool
}

// ConfirmAllocations recomputes the layer from a fresh snapshot, turns the
// operator's slot→position selections into an allocation record batch and
// persists it atomically. Selections for slots the layer does not produce
// are ignored as operator no-ops. If dryRun is set, nothing is written.
func ConfirmAllocations(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	layer int,
	selectedWeapon model.Job,
	selections engine.Selections,
	dryRun bool,
) (*ConfirmResult, error) {
	logger.Info("Confirming allocations",
		zap.Int("layer", layer),
		zap.Int("selections", len(selections)),
		zap.Bool("dry_run", dryRun))

	layerResult, eng, err := computeLayer(ctx, database, cfg, logger, layer, selectedWeapon)
	if err != nil {
		return nil, err
	}

	confirmation := eng.BuildConfirmation(layer, layerResult.Week, layerResult.Results, selections, time.Now())

	result := &ConfirmResult{
		Layer:          layer,
		Week:           layerResult.Week,
		Records:        confirmation.Records,
		PriorityDeltas: confirmation.PriorityDeltas,
		DryRun:         dryRun,
	}

	if dryRun {
		logger.Info("Dry run, skipping persistence", zap.Int("records", len(confirmation.Records)))
		return result, nil
	}

	allocations := make([]db.Allocation, len(confirmation.Records))
	for i, rec := range confirmation.Records {
		allocations[i] = toDBAllocation(uuid.New().String(), cfg.RaidTierID, rec)
	}

	deltas := make(map[string]int, len(confirmation.PriorityDeltas))
	for pos, delta := range confirmation.PriorityDeltas {
		deltas[string(pos)] = delta
	}

	if err := database.ConfirmAllocations(ctx, cfg.RaidTierID, allocations, deltas); err != nil {
		return nil, fmt.Errorf("failed to confirm allocations: %w", err)
	}

	logger.Info("Allocations confirmed",
		zap.Int("layer", layer),
		zap.Int("week", layerResult.Week),
		zap.Int("records", len(allocations)))

	return result, nil
}
