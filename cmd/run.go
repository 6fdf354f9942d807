package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	statusrender "github.com/gorchard/farmhand/internal/adapters/render/status"
)

func newRunCmd(verbose *bool) *cobra.Command {
	var renderEvery time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the session and supervise it until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := wireApp(ctx, *verbose)
			if err != nil {
				return err
			}

			if err := a.supervisor.Start(ctx); err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			ticker := time.NewTicker(renderEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					return a.supervisor.Close(shutdownCtx)
				case <-ticker.C:
					snap := a.supervisor.Status()
					fmt.Fprintln(cmd.OutOrStdout(), statusrender.Render(snap, statusrender.RenderOptions{
						Now:        time.Now(),
						VisitLines: 5,
					}))
				}
			}
		},
	}

	cmd.Flags().DurationVar(&renderEvery, "render-every", 10*time.Second, "how often to print the status panel")
	return cmd
}
