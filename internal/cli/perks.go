package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/services/perk"
)

func newPerksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perks",
		Short: "List every perk",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := response.PerkList{Perks: response.PerksFromRegistry(perk.NewRegistry())}
			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(list)
			return nil
		},
	}
}
