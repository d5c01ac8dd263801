package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/briefdeck/briefdeck/internal/mockapi"
)

func newDemoCommand() *cobra.Command {
	var (
		addr string
		step time.Duration
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a local mock backend for trying briefdeck offline",
		Long: `Run a local mock backend for trying briefdeck offline.

The mock serves the full API surface and advances submitted jobs through
their agents on a timer, emitting results in every payload shape the real
backend produces. Point briefdeck at it with --api-url.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:    addr,
				Handler: mockapi.NewHandler(step),
			}

			go func() {
				<-cmd.Context().Done()
				srv.Close() //nolint:errcheck
			}()

			fmt.Fprintf(os.Stderr, "Mock backend listening on %s\n", addr)
			fmt.Fprintf(os.Stderr, "Try: briefdeck --api-url http://%s prepare --watch\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Address to listen on")
	cmd.Flags().DurationVar(&step, "step", 700*time.Millisecond, "Delay between agent transitions")

	return cmd
}
