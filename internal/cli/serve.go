package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/infra/memapi"
)

// newServeCommand creates the serve command running the demo backend.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the built-in demo API server",
		Long: `Run the in-memory demo API server.

The server is seeded with demo users and tasks and speaks the same
REST surface as a production backend. Point the CLI at it with:

  TASKDECK_API_BASE_URL=http://localhost:3000 taskdeck task list

Any password is accepted for the seeded accounts (try
admin@example.com). Data lives in memory and resets on restart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := memapi.NewServer(c.Logger)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Demo API listening on %s\n", addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	return cmd
}
