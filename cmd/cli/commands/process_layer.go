package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harukisb/raidloot/pkg/core/engine"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/core/services"
)

// ProcessLayerCmd creates the processLayer command
func ProcessLayerCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "processLayer",
		Short: "Rank candidates and recommend winners for a layer's drops",
		Long:  "Run the allocation engine over every drop of a layer and show the ranked candidates and recommendation per drop",
		RunE: func(cmd *cobra.Command, args []string) error {
			layer, _ := cmd.Flags().GetInt("layer")
			weapon, _ := cmd.Flags().GetString("weapon")

			app.Logger.Debug("processLayer command",
				zap.Int("layer", layer),
				zap.String("weapon", weapon))

			result, err := services.ProcessLayer(app.Ctx, app.Database, app.Cfg, app.Logger, layer, model.Job(weapon))
			if err != nil {
				return fmt.Errorf("failed to process layer: %w", err)
			}

			fmt.Printf("\n第%d層 ドロップ分配 (week %d)\n", result.Layer, result.Week)

			if len(result.Results) == 0 {
				fmt.Println("\nこの層にはドロップがありません")
				return nil
			}

			for _, slot := range result.Order {
				printAllocationResult(result.Results[slot])
			}

			return nil
		},
	}

	cmd.Flags().Int("layer", 0, "Layer number (1-4)")
	cmd.Flags().String("weapon", "", "Selected direct drop weapon (job name, layer 4 only)")
	cmd.MarkFlagRequired("layer")

	return cmd
}

// printAllocationResult renders one drop's candidates and recommendation.
// The ambiguous outcomes each get their own distinct rendering.
func printAllocationResult(result engine.AllocationResult) {
	fmt.Printf("\n▼ %s\n", result.Drop.Name)

	switch {
	case result.NoWeaponSelected:
		fmt.Println("  武器未選択（--weapon でドロップした武器を指定してください）")
		return
	case result.IsMultipleRecommended:
		fmt.Println("  第二希望者が複数います。手動で選択してください:")
		for _, c := range result.MultipleRecommended {
			fmt.Printf("    - %s (%s) score=%d\n", c.Position, c.Player.Name, c.Score)
		}
	case result.Recommended != nil:
		fmt.Printf("  推奨: %s (%s)\n", result.Recommended.Position, result.Recommended.Player.Name)
	default:
		fmt.Println("  取得可能なメンバーがいません")
	}

	for _, c := range result.Candidates {
		marker := " "
		if result.Recommended != nil && c.Position == result.Recommended.Position {
			marker = "*"
		}
		fmt.Printf("  %s %-2s %-12s %-5s score=%-5d %s\n",
			marker, c.Position, c.Player.Name, c.Category, c.Score, c.Reason)
	}
}
