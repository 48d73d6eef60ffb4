// Command lod manages the Loglan dictionary database: migrations, lookups,
// text exports and schema diagrams.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loglan_core/internal/app"
	"loglan_core/internal/config"
	"loglan_core/internal/logging"
)

// cli holds what the root command builds before any subcommand runs.
type cli struct {
	configPath string
	verbose    bool

	logger *zap.Logger
	app    *app.App
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "lod",
		Short: "lod - Loglan dictionary tool",
		Long: `lod works on a Loglan dictionary stored in PostgreSQL or SQLite.

Connection settings come from .env, an optional YAML file (--config) and
the environment, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}

			c.logger, err = logging.New(cfg.LogLevel, c.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			c.app, err = app.New(cmd.Context(), cfg, c.logger)
			if err != nil {
				return fmt.Errorf("failed to open dictionary: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newMigrateCmd(c),
		newWordsCmd(c),
		newDefinitionsCmd(c),
		newKeysCmd(c),
		newSourcesCmd(c),
		newLinkCmd(c),
		newExportCmd(c),
		newSchemaCmd(c),
	)
	return root
}

// close releases the database and flushes the logger. It runs whether or
// not the command succeeded.
func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
