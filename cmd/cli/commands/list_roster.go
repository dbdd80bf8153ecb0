package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harukisb/raidloot/pkg/core/services"
)

// ListRosterCmd creates the listRoster command
func ListRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster",
		Short: "List the raid tier roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := services.ListRoster(app.Ctx, app.Database, app.Cfg, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to list roster: %w", err)
			}

			fmt.Printf("\nRoster for %s:\n\n", app.Cfg.RaidTierID)
			for _, entry := range entries {
				wishes := make([]string, 0, 2)
				for _, w := range entry.Player.Wishes() {
					wishes = append(wishes, string(w))
				}
				fmt.Printf("- %-2s %-12s %s 希望:[%s] 動的優先度:%d\n",
					entry.Position,
					entry.Player.Name,
					entry.Player.Job,
					strings.Join(wishes, ", "),
					entry.Player.DynamicPriority,
				)
			}

			return nil
		},
	}
}
