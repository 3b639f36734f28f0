package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/game"
)

const playHelp = `Commands:
  <enter>, d    draw
  1-9           take the numbered perk from the offer
  <perk id>     take a perk by id
  s             show the board
  l             show the log
  r             restart with the same seed
  q             quit`

// localGame drives a session from line-based input
type localGame struct {
	session *game.Session
	out     *Output
	w       io.Writer
}

func newLocalGame(rules config.Rules, seed uint64, format string, w io.Writer, logger *slog.Logger) *localGame {
	return &localGame{
		session: game.NewSession(rules, random.NewSeeded(seed), logger),
		out:     NewOutputTo(format, w),
		w:       w,
	}
}

func (g *localGame) show() {
	g.out.Print(response.RunFromSnapshot("", g.session.Snapshot()))
}

// handle applies one input line and reports whether the player quit
func (g *localGame) handle(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "q", "quit", "exit":
		return true
	case "", "d", "draw":
		result := g.session.Draw()
		g.out.Print(response.DrawResponse{
			Result: response.DrawFromModel(result),
			Run:    response.RunFromSnapshot("", g.session.Snapshot()),
		})
	case "s", "show":
		g.show()
	case "l", "log":
		for _, entry := range g.session.Snapshot().Logs {
			fmt.Fprintln(g.w, entry)
		}
	case "r", "restart":
		g.session.Restart()
		g.show()
	case "h", "help", "?":
		fmt.Fprintln(g.w, playHelp)
	default:
		g.choose(line)
	}
	return false
}

func (g *localGame) choose(input string) {
	id := model.PerkID(input)
	if n, err := strconv.Atoi(input); err == nil {
		offer := g.session.Snapshot().PerkOffer
		if n < 1 || n > len(offer) {
			fmt.Fprintf(g.w, "No perk numbered %d on offer\n", n)
			return
		}
		id = offer[n-1]
	}

	if _, ok := g.session.ChoosePerk(id); !ok {
		fmt.Fprintf(g.w, "Cannot take %q now (type h for help)\n", input)
		return
	}
	g.show()
}

// run reads commands until EOF or quit
func (g *localGame) run(r io.Reader) error {
	g.show()
	fmt.Fprintln(g.w, "Type h for help.")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if g.handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func newPlayCmd() *cobra.Command {
	var (
		seed      uint64
		rulesPath string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a local run on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadRules(rulesPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = random.New().Seed()
			}

			g := newLocalGame(rules, seed, cfg.Output, cmd.OutOrStdout(), cliLogger(cmd))
			return g.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible run (random if unset)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Rules YAML file")

	return cmd
}
