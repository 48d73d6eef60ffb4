package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loglan_core/internal/services"
)

func newExportCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export [table]...",
		Short: "Export tables as @-separated text",
		Long: fmt.Sprintf(`Export tables as @-separated text, one row per line.

Without arguments every table is exported: %v.
Output goes to stdout unless --dir is set, which writes <table>.txt files.`, services.ExportTables),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := args
			if len(tables) == 0 {
				tables = services.ExportTables
			}

			if dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}
			}

			for _, table := range tables {
				if err := exportTable(cmd, c, table, dir); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Write one file per table into this directory")
	return cmd
}

func exportTable(cmd *cobra.Command, c *cli, table, dir string) error {
	if dir == "" {
		_, err := c.app.Exporter.ExportTable(cmd.Context(), table, cmd.OutOrStdout())
		return err
	}

	path := filepath.Join(dir, table+".txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	n, err := c.app.Exporter.ExportTable(cmd.Context(), table, f)
	if err != nil {
		return err
	}
	c.logger.Debug("Wrote export file", zap.String("path", path), zap.Int("rows", n))
	return f.Close()
}
