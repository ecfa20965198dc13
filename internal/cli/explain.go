package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
)

// Explain sends req to the explanation service and prints the answer as
// rendered markdown. Failures carry the message shown to users.
func Explain(ctx context.Context, stack *Stack, req explain.Request, out io.Writer, width int) error {
	if _, err := domain.ParseAlgorithm(req.Algorithm); err != nil {
		return err
	}
	text, err := stack.Explainer.Explain(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", errorMessage(err), err)
	}
	writeMarkdown(out, width, text)
	return nil
}

func errorMessage(err error) string {
	return explain.UserMessage(err)
}

func writeMarkdown(out io.Writer, width int, text string) {
	if width <= 0 {
		width = tui.DefaultWidth
	}
	rendered, err := tui.NewRenderer(width)(text)
	if err != nil {
		rendered = text + "\n"
	}
	fmt.Fprint(out, rendered)
}
