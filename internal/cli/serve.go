package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-manager/internal/server"
	"github.com/pfrederiksen/event-manager/internal/storage"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		listen   string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a development Remote Event Service backed by a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Server.Listen
			}
			if dataFile == "" {
				dataFile = cfg.Server.DataFile
			}

			st, err := storage.New(dataFile)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s\n", st.Path(), listen)
			return server.New(st).ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config, 127.0.0.1:3001)")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Database file (default from config, db.json)")
	return cmd
}
