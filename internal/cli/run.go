package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/roguebingo/internal/api/request"
	"github.com/mcoot/roguebingo/internal/api/response"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Remote run commands",
	}

	cmd.AddCommand(newRunStartCmd())
	cmd.AddCommand(newRunGetCmd())
	cmd.AddCommand(newRunDrawCmd())
	cmd.AddCommand(newRunPerkCmd())
	cmd.AddCommand(newRunRestartCmd())
	cmd.AddCommand(newRunAbandonCmd())

	return cmd
}

func newRunStartCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new run on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.StartRunRequest
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			var result response.Run
			if err := client.Post("/api/v1/runs", req, &result); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible run (random if unset)")
	return cmd
}

func newRunGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current run state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Run
			if err := client.Get(fmt.Sprintf("/api/v1/runs/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRunDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <id>",
		Short: "Play one turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DrawResponse
			if err := client.Post(fmt.Sprintf("/api/v1/runs/%s/draw", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRunPerkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perk <id> <perk_id>",
		Short: "Take a perk from the current offer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.ChoosePerkRequest{PerkID: args[1]}

			var result response.Run
			if err := client.Post(fmt.Sprintf("/api/v1/runs/%s/perk", args[0]), req, &result); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRunRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <id>",
		Short: "Restart a run with the same seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Run
			if err := client.Post(fmt.Sprintf("/api/v1/runs/%s/restart", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRunAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Stop hosting a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/runs/%s", args[0])); err != nil {
				return err
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).PrintMessage("Run abandoned")
			return nil
		},
	}
}
