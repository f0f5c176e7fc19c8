package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-manager/internal/config"
	"github.com/pfrederiksen/event-manager/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// defaultTimeout applies to CLI requests when the config sets none
const defaultTimeout = 30 * time.Second

// options are the persistent flags shared by every command
type options struct {
	configPath string
	serviceURL string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "event-manager",
		Short: "Browse and manage events on a Remote Event Service",
		Long: `A CLI tool to list, filter, create, edit and delete events stored on a
Remote Event Service, and to run a development instance of that service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.serviceURL, "service-url", "", "Remote Event Service base URL (overrides serviceBaseUrl)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newCategoriesCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}

// loadConfig reads the config file, applies flag overrides and configures
// the default logger to write to the command's stderr.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if o.serviceURL != "" {
		if err := config.ValidateServiceURL(o.serviceURL); err != nil {
			return nil, err
		}
		cfg.ServiceBaseURL = o.serviceURL
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return cfg, nil
}

// parseCategoryFlags splits repeated and comma-separated --category values
func parseCategoryFlags(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
