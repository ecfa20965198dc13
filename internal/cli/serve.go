package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, stack *Stack, addr string, out io.Writer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ServeListener(ctx, stack, ln, out)
}

// ServeListener serves the HTTP API on ln. When ctx is cancelled it stops
// accepting connections and gives in-flight requests the configured shutdown
// timeout before closing them.
func ServeListener(ctx context.Context, stack *Stack, ln net.Listener, out io.Writer) error {
	srv := &http.Server{
		Handler: stack.Handler(),
	}

	printSystemMessage(out, "Starting stepwise server on %s", ln.Addr())
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		timeout := stack.Config.Server.ShutdownTimeout
		stack.Logger.Info("shutting down", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			stack.Logger.Warn("graceful shutdown did not complete", "timeout", timeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}
