package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harukisb/raidloot/pkg/core/engine"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/core/services"
)

// ConfirmCmd creates the confirm command
func ConfirmCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm winners for a layer and persist allocation records",
		Long:  "Write allocation records for the operator's slot=position picks and bump the winners' dynamic priority. Unselected drops are discarded for this clear.",
		RunE: func(cmd *cobra.Command, args []string) error {
			layer, _ := cmd.Flags().GetInt("layer")
			weapon, _ := cmd.Flags().GetString("weapon")
			rawSelections, _ := cmd.Flags().GetStringSlice("select")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			selections, err := parseSelections(rawSelections)
			if err != nil {
				return err
			}

			app.Logger.Debug("confirm command",
				zap.Int("layer", layer),
				zap.Int("selections", len(selections)),
				zap.Bool("dry_run", dryRun))

			result, err := services.ConfirmAllocations(
				app.Ctx, app.Database, app.Cfg, app.Logger,
				layer, model.Job(weapon), selections, dryRun,
			)
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}

			if result.DryRun {
				fmt.Printf("\n[dry run] 第%d層 week %d — 保存しません\n", result.Layer, result.Week)
			} else {
				fmt.Printf("\n第%d層 week %d — %d件を記録しました\n", result.Layer, result.Week, len(result.Records))
			}

			for _, rec := range result.Records {
				weaponInfo := ""
				if rec.Weapon != "" {
					weaponInfo = fmt.Sprintf(" [%s]", rec.Weapon)
				}
				fmt.Printf("  %-2s %s → %s%s\n", rec.Position, rec.Slot.DisplayName(), rec.Status, weaponInfo)
			}

			if len(result.PriorityDeltas) > 0 {
				fmt.Println("\nDynamic priority:")
				for _, pos := range model.Positions() {
					if delta, ok := result.PriorityDeltas[pos]; ok {
						fmt.Printf("  %-2s +%d\n", pos, delta)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().Int("layer", 0, "Layer number (1-4)")
	cmd.Flags().String("weapon", "", "Selected direct drop weapon (job name, layer 4 only)")
	cmd.Flags().StringSlice("select", nil, "Winner picks as slot=position (repeatable)")
	cmd.Flags().Bool("dry-run", false, "Compute the batch without persisting it")
	cmd.MarkFlagRequired("layer")
	cmd.MarkFlagRequired("select")

	return cmd
}

// parseSelections parses repeated slot=position flags.
func parseSelections(raw []string) (engine.Selections, error) {
	selections := make(engine.Selections, len(raw))
	for _, pair := range raw {
		slot, pos, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid selection %q, expected slot=position", pair)
		}
		position := model.Position(strings.TrimSpace(pos))
		if position != "" && !position.IsValid() {
			return nil, fmt.Errorf("unknown position %q in selection %q", pos, pair)
		}
		selections[model.Slot(strings.TrimSpace(slot))] = position
	}
	return selections, nil
}
