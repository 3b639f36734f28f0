package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/roguebingo/internal/api/response"
)

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard [id]",
		Short: "Show the best finished runs, or one recorded run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())

			if len(args) == 1 {
				var result response.RunSummary
				if err := client.Get(fmt.Sprintf("/api/v1/leaderboard/%s", args[0]), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.Leaderboard
			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of runs to show")
	return cmd
}
