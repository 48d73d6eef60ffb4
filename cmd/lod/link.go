package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newLinkCmd(c *cli) *cobra.Command {
	var authors bool

	cmd := &cobra.Command{
		Use:   "link <word-id> <id>...",
		Short: "Link derivatives to a parent word, or authors to a word",
		Long: `Link derivatives to a parent word. With --authors the remaining ids are
authors credited with the word. Existing links are kept.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			if authors {
				err = c.app.Linker.AddAuthors(cmd.Context(), ids[0], ids[1:])
			} else {
				err = c.app.Linker.AddChildren(cmd.Context(), ids[0], ids[1:])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %d to word %d\n", len(ids)-1, ids[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&authors, "authors", false, "Treat the ids as author ids")
	return cmd
}
