package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/tableview/internal/app"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			application := app.New(configPath) // Initialize the application
			wait := application.Start()        // Start the application and wait for the termination signal
			<-wait                             // Wait for the application to receive a termination signal

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			application.Stop(ctx) // Stop the application gracefully
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (default /config/config.yaml, ./config/config.yaml when LOCAL=true)")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for a graceful shutdown")

	return cmd
}
