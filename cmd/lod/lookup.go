package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"loglan_core/internal/models"
	"loglan_core/internal/selectors"
)

type fetcher[T any] interface {
	All(ctx context.Context, db *gorm.DB) ([]T, error)
	FetchMany(ctx context.Context, db *gorm.DB, size int) ([]T, error)
}

func fetch[T any](ctx context.Context, db *gorm.DB, sel fetcher[T], limit int) ([]T, error) {
	if limit > 0 {
		return sel.FetchMany(ctx, db, limit)
	}
	return sel.All(ctx, db)
}

func newWordsCmd(c *cli) *cobra.Command {
	var (
		eventID       int64
		key, lang     string
		typ, group    string
		caseSensitive bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "words [name]",
		Short: "List words, optionally filtered",
		Long: `List words ordered by name. The name may contain the * wildcard.

--event 0 selects the words of the latest event.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectors.Words(c.app.SelectorOptions(caseSensitive)...).Preload("Type")
			if cmd.Flags().Changed("event") {
				sel = sel.ByEvent(eventID)
			}
			if len(args) == 1 {
				sel = sel.ByName(args[0])
			}
			if key != "" {
				sel = sel.ByKey(key, lang)
			}
			if f := (selectors.TypeFilter{Type: typ, Group: group}); !f.IsZero() {
				sel = sel.ByType(f)
			}

			words, err := fetch[models.Word](cmd.Context(), c.app.DB, sel, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range words {
				code := ""
				if w.Type != nil {
					code = w.Type.Type
				}
				fmt.Fprintf(out, "%d\t%s\t%s\n", w.ID, w.Name, code)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Only words active at this event (0 for the latest)")
	cmd.Flags().StringVar(&key, "key", "", "Only words with a definition keyed by this word")
	cmd.Flags().StringVar(&lang, "lang", "", "Language of --key")
	cmd.Flags().StringVar(&typ, "type", "", "Word type, e.g. 2-Cpx")
	cmd.Flags().StringVar(&group, "group", "", "Word type group, e.g. Cpx")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match names and keys case-sensitively")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of words")
	return cmd
}

func newDefinitionsCmd(c *cli) *cobra.Command {
	var (
		eventID       int64
		wordID        int64
		lang          string
		caseSensitive bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "definitions [key]",
		Short: "List definitions, optionally by key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectors.Definitions(c.app.SelectorOptions(caseSensitive)...).Preload("SourceWord")
			if cmd.Flags().Changed("event") {
				sel = sel.ByEvent(eventID)
			}
			switch {
			case len(args) == 1:
				sel = sel.ByKey(args[0], lang)
			case lang != "":
				sel = sel.ByLanguage(lang)
			}
			if wordID != 0 {
				sel = sel.ByWord(wordID)
			}

			definitions, err := fetch[models.Definition](cmd.Context(), c.app.DB, sel, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range definitions {
				name := ""
				if d.SourceWord != nil {
					name = d.SourceWord.Name
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", name, d.Grammar(), d.Body)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Only definitions of words active at this event (0 for the latest)")
	cmd.Flags().Int64Var(&wordID, "word", 0, "Only definitions of this word id")
	cmd.Flags().StringVar(&lang, "lang", "", "Definition language")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match keys case-sensitively")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of definitions")
	return cmd
}

func newKeysCmd(c *cli) *cobra.Command {
	var (
		eventID       int64
		wordID        int64
		lang          string
		caseSensitive bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "keys [key]",
		Short: "List definition keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectors.Keys(c.app.SelectorOptions(caseSensitive)...)
			if cmd.Flags().Changed("event") {
				sel = sel.ByEvent(eventID)
			}
			if len(args) == 1 {
				sel = sel.ByKey(args[0])
			}
			if lang != "" {
				sel = sel.ByLanguage(lang)
			}
			if wordID != 0 {
				sel = sel.ByWord(wordID)
			}

			keys, err := fetch[models.Key](cmd.Context(), c.app.DB, sel, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintf(out, "%s\t%s\n", k.Word, k.Language)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Only keys of words active at this event (0 for the latest)")
	cmd.Flags().Int64Var(&wordID, "word", 0, "Only keys of this word id")
	cmd.Flags().StringVar(&lang, "lang", "", "Key language")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match keys case-sensitively")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of keys")
	return cmd
}
