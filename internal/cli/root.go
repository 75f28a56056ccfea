package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fakelog/internal/display"
	"fakelog/internal/logger"
	"fakelog/internal/metrics"
	"fakelog/internal/simulator"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fakelog",
		Short:        "Stream convincing fake system activity to the terminal",
		Long:         `Prints an endless, randomly generated stream of timestamped and colorized log lines imitating a busy system. Press Ctrl+C to stop.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command line and leaves exiting to the caller.
func Execute(ctx context.Context, args []string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func run(ctx context.Context, stdout, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runID := uuid.New().String()[:8]
	rm := metrics.New(runID)
	sim := simulator.New(display.NewConsole(stdout), nil, nil, rm)
	logger.Log.Printf("[Run %s] Starting simulation", runID)

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return sim.Run(gctx)
	})
	g.Go(func() error {
		select {
		case sig := <-sigs:
			logger.Log.Printf("[Run %s] Received %s, stopping", runID, sig)
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	err := g.Wait()
	rm.Finalize()
	logger.Log.Printf("[Run %s] %s", runID, display.FormatRunMetrics(rm))
	if err != nil {
		logger.Log.Printf("[Run %s] Simulation FAILED: %v", runID, err)
		return fmt.Errorf("simulation stopped: %w", err)
	}

	fmt.Fprintln(stderr, "\nGoodbye!")
	return nil
}
