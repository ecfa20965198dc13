package main

import (
	"math/rand/v2"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var (
		flags    cli.InputFlags
		speed    int
		seed     uint64
		headless bool
		plain    bool
		legend   bool
		explain  bool
	)

	cmd := &cobra.Command{
		Use:   "play <algorithm>",
		Short: "Play an algorithm in the terminal",
		Long: `Records a run and replays it frame by frame.

While playing, type a command and press Enter:
  p or Enter   pause / resume
  n            next step (pauses first)
  + / -        faster / slower
  r            restart
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}

			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			in, err := cli.BuildInput(id, flags, rng)
			if err != nil {
				return err
			}

			playback := stack.Config.Playback
			if !cmd.Flags().Changed("speed") {
				speed = playback.Speed
			}
			if !cmd.Flags().Changed("legend") {
				legend = playback.Legend
			}

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			defer sc.LogStop(stack.Logger)

			session := cli.NewSession(stack, cli.PlayOptions{
				Algorithm: id,
				Input:     in,
				Speed:     speed,
				BarHeight: playback.BarHeight,
				Width:     tui.TerminalWidth(),
				Legend:    legend,
				Headless:  headless,
				Plain:     plain,
				Explain:   explain,
			}, cmd.InOrStdin(), cmd.OutOrStdout())

			_, err = session.Play(sc)
			return cli.HandleExecutionError(err)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.Values, "values", "", "Custom array for sorts, e.g. \"5,3,8,1\"")
	f.IntVar(&flags.Size, "size", generator.DefaultSize, "Random array length for sorts")
	f.StringVar(&flags.Edges, "edges", "", "Custom graph as an edge list, e.g. \"A-B:4, A-D:2, B-C\"")
	f.StringVar(&flags.Start, "start", "", "Start node for graph algorithms (default: first node)")
	f.StringVar(&flags.Target, "target", "", "Target node for Dijkstra (default: last node)")
	f.IntVarP(&flags.N, "number", "n", generator.DefaultFibonacci, "n for Fibonacci")
	f.StringVar(&flags.First, "first", "", "First sequence for LCS")
	f.StringVar(&flags.Second, "second", "", "Second sequence for LCS")
	f.Uint64Var(&seed, "seed", 0, "Seed for random arrays (0 picks one)")
	f.IntVarP(&speed, "speed", "s", 50, "Playback speed, 1-100")
	f.BoolVar(&headless, "headless", false, "Print one operation per line instead of drawing frames")
	f.BoolVar(&plain, "plain", false, "Disable colour and screen clearing")
	f.BoolVar(&legend, "legend", true, "Show the colour legend")
	f.BoolVar(&explain, "explain", false, "Explain the algorithm's complexity when playback ends")
	return cmd
}
