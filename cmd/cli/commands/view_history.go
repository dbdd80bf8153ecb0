package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/core/services"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewHistory",
		Short: "Show the allocation history of the raid tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			position, _ := cmd.Flags().GetString("position")

			pos := model.Position(position)
			if pos != "" && !pos.IsValid() {
				return fmt.Errorf("unknown position %q", position)
			}

			entries, err := services.ViewHistory(app.Ctx, app.Database, app.Cfg, app.Logger, pos)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			fmt.Printf("\n%d allocation records:\n\n", len(entries))
			for _, entry := range entries {
				rec := entry.Record
				weaponInfo := ""
				if rec.Weapon != "" {
					weaponInfo = fmt.Sprintf(" [%s]", rec.Weapon)
				}
				fmt.Printf("- %s 第%d層 week %-3d %-2s %-8s %s%s\n",
					entry.Timestamp, rec.Layer, rec.Week,
					rec.Position, rec.Slot.DisplayName(), rec.Status, weaponInfo)
			}

			return nil
		},
	}

	cmd.Flags().String("position", "", "Filter to one position (MT, ST, H1, H2, D1-D4)")

	return cmd
}
