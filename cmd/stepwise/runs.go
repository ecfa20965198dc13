package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded run ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			ids, err := stack.Engine.Runs(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id> [step]",
		Short: "Show a run summary, or render one of its steps",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			run, err := stack.Engine.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				final, _ := run.Final()
				fmt.Fprintf(out, "%s  %s  %s  steps=%d comparisons=%d swaps=%d\n",
					run.ID, run.Algorithm, run.CreatedAt.Format("2006-01-02 15:04:05"),
					len(run.Steps), final.Comparisons, final.Swaps)
				if final.Operation != "" {
					fmt.Fprintln(out, final.Operation)
				}
				return nil
			}

			index, err := strconv.Atoi(args[1])
			if err != nil || index < 0 || index >= len(run.Steps) {
				return fmt.Errorf("step %q out of range (run has %d steps)", args[1], len(run.Steps))
			}
			frames := tui.NewFrameRenderer(
				tui.WithProfile(termenv.Ascii),
				tui.WithWidth(tui.TerminalWidth()),
				tui.WithBarHeight(stack.Config.Playback.BarHeight),
			)
			state := stepState(index, len(run.Steps))
			fmt.Fprint(out, frames.Render(run.Algorithm, run.Steps[index], state))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()
			return stack.Engine.Delete(cmd.Context(), args[0])
		},
	})
	return cmd
}

// stepState describes a run parked on step index, for the frame status line.
func stepState(index, total int) domain.PlaybackState {
	return domain.PlaybackState{Cursor: index + 1, Total: total, Status: domain.StatusPaused}
}
