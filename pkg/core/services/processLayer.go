package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/core/catalog"
	"github.com/harukisb/raidloot/pkg/core/engine"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// LayerResult contains the computed allocation results for one layer.
type LayerResult struct {
	Layer   int
	Week    int
	Results map[model.Slot]engine.AllocationResult

	// Order lists the result slots in catalog order for rendering.
	Order []model.Slot
}

// ProcessLayer loads a fresh snapshot, runs the allocation engine over every
// drop of the layer and returns the ranked results and recommendations.
// selectedWeapon names the weapon that dropped for the direct weapon entry;
// it may be empty, meaning the operator has not chosen one yet.
func ProcessLayer(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	layer int,
	selectedWeapon model.Job,
) (*LayerResult, error) {
	result, _, err := computeLayer(ctx, database, cfg, logger, layer, selectedWeapon)
	return result, err
}

// computeLayer is the shared snapshot-load-and-compute step behind
// ProcessLayer and ConfirmAllocations. It also returns the engine so a
// confirmation can be built against the exact snapshot the results came from.
func computeLayer(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	layer int,
	selectedWeapon model.Job,
) (*LayerResult, *engine.Engine, error) {
	logger.Info("Processing layer",
		zap.Int("layer", layer),
		zap.String("selected_weapon", string(selectedWeapon)))

	if selectedWeapon != "" && !selectedWeapon.IsValid() {
		return nil, nil, fmt.Errorf("unknown weapon %q", selectedWeapon)
	}

	snapshot, err := LoadSnapshot(ctx, database, cfg.RaidTierID, logger)
	if err != nil {
		return nil, nil, err
	}

	priorities, err := cfg.PriorityTable()
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(snapshot.Roster, snapshot.History, priorities)
	if err != nil {
		return nil, nil, err
	}

	results, err := eng.ProcessLayer(layer, selectedWeapon)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to process layer %d: %w", layer, err)
	}

	week, err := CurrentWeek(cfg)
	if err != nil {
		return nil, nil, err
	}

	order := make([]model.Slot, 0, len(results))
	for _, entry := range catalog.Drops(layer) {
		order = append(order, entry.Slot)
	}

	logger.Info("Layer processed",
		zap.Int("layer", layer),
		zap.Int("week", week),
		zap.Int("drops", len(results)))

	return &LayerResult{
		Layer:   layer,
		Week:    week,
		Results: results,
		Order:   order,
	}, eng, nil
}
