package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the database schema as a Mermaid ER diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.app.Schema(cmd.Context())
			if err != nil {
				return err
			}
			diagram, err := svc.VisualizeSchema(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), diagram)
			return nil
		},
	}
}
