package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Ask the language model to explain an algorithm",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complexity <algorithm>",
		Short: "Explain an algorithm's time and space complexity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, explain.Request{Kind: explain.KindComplexity, Algorithm: args[0]})
		},
	})

	var state, step string
	stepCmd := &cobra.Command{
		Use:   "step <algorithm>",
		Short: "Explain one step of an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := explain.Request{Kind: explain.KindStep, Algorithm: args[0], Step: step}
			if state != "" {
				var v any
				if err := json.Unmarshal([]byte(state), &v); err != nil {
					return fmt.Errorf("--state must be JSON: %w", err)
				}
				req.State = v
			}
			return runExplain(cmd, req)
		},
	}
	stepCmd.Flags().StringVar(&state, "state", "", "Visible state as JSON, e.g. \"[5,3,8]\"")
	stepCmd.Flags().StringVar(&step, "step", "", "Operation text of the step")
	_ = stepCmd.MarkFlagRequired("step")
	cmd.AddCommand(stepCmd)
	return cmd
}

func newReviewCmd() *cobra.Command {
	var file, language string
	cmd := &cobra.Command{
		Use:   "review <algorithm>",
		Short: "Review an implementation of an algorithm",
		Long:  `Reads code from --file (or stdin when --file is "-") and asks for a review.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				code []byte
				err  error
			)
			if file == "-" {
				code, err = io.ReadAll(cmd.InOrStdin())
			} else {
				code, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("failed to read code: %w", err)
			}
			return runExplain(cmd, explain.Request{
				Kind:      explain.KindReview,
				Algorithm: args[0],
				Code:      string(code),
				Language:  language,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "File to review, or - for stdin")
	cmd.Flags().StringVarP(&language, "language", "l", explain.DefaultLanguage, "Language of the code")
	return cmd
}

func runExplain(cmd *cobra.Command, req explain.Request) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}
	defer stack.Close()
	return cli.Explain(cmd.Context(), stack, req, cmd.OutOrStdout(), tui.TerminalWidth())
}
