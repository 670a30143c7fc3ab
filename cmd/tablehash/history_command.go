package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tablehash/internal/history"
)

type historyEntryView struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Mode      string `json:"mode"`
	Digest    string `json:"digest"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	CreatedAt string `json:"created_at"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var digest string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded fingerprints",
		Long: "Show previously computed fingerprints from the history database,\n" +
			"newest first. Filter by digest to find every file that produced it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return fmt.Errorf("configuration unavailable")
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			var entries []history.Entry
			if digest != "" {
				entries, err = store.FindByDigest(cmd.Context(), digest)
			} else {
				entries, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				views := make([]historyEntryView, 0, len(entries))
				for _, entry := range entries {
					views = append(views, historyEntryView{
						ID:        entry.ID,
						Path:      entry.Path,
						Mode:      string(entry.Mode),
						Digest:    entry.Digest,
						Rows:      entry.Rows,
						Columns:   entry.Columns,
						CreatedAt: entry.CreatedAt.Format(time.RFC3339),
					})
				}
				return writeJSON(cmd, views)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No fingerprints recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Path,
					string(entry.Mode),
					strconv.Itoa(entry.Rows),
					strconv.Itoa(entry.Columns),
					shortDigest(entry.Digest),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Recorded", "File", "Mode", "Rows", "Cols", "Digest"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show (0 shows all)")
	cmd.Flags().StringVar(&digest, "digest", "", "Show only entries matching this digest")
	return cmd
}

func shortDigest(digest string) string {
	if len(digest) <= 16 {
		return digest
	}
	return digest[:16]
}
