package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loglan_core/internal/models"
)

func newSourcesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sources <name>",
		Short: "Show what a word was built from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			homonyms, err := c.app.Words.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if len(homonyms) == 0 {
				return fmt.Errorf("no word named %q", args[0])
			}

			out := cmd.OutOrStdout()
			for _, h := range homonyms {
				w, err := c.app.Words.Load(ctx, h.ID)
				if err != nil {
					return err
				}

				lines, err := sourceLines(cmd, c, w)
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}

func sourceLines(cmd *cobra.Command, c *cli, w *models.Word) ([]string, error) {
	sources := c.app.Sources
	var lines []string

	prims, err := sources.PrimSources(w)
	if err != nil {
		return nil, err
	}
	for _, ws := range prims {
		lines = append(lines, fmt.Sprintf("%s\t%s", ws.LanguageName(), ws.Transcription))
	}

	origin, err := sources.PrimOrigin(w)
	if err != nil {
		return nil, err
	}
	if origin != "" {
		lines = append(lines, origin)
	}

	complexes, err := sources.ComplexSources(cmd.Context(), w)
	if err != nil {
		return nil, err
	}
	compounds, err := sources.CompoundSources(cmd.Context(), w)
	if err != nil {
		return nil, err
	}
	for _, src := range append(complexes, compounds...) {
		lines = append(lines, src.Name)
	}
	return lines, nil
}
