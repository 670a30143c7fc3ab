package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tablehash/internal/canon"
	"tablehash/internal/history"
)

type compareResult struct {
	Left   fingerprintResult `json:"left"`
	Right  fingerprintResult `json:"right"`
	Match  bool              `json:"match"`
	Mode   string            `json:"mode"`
	Detail string            `json:"detail,omitempty"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var ordered bool
	var dateOnly bool

	cmd := &cobra.Command{
		Use:   "compare <file> <file>",
		Short: "Compare the content fingerprints of two datasets",
		Long: "Compute the same fingerprint for both files and report whether they\n" +
			"match. The default unordered mode treats the files as equal when they\n" +
			"hold the same rows and columns in any order and any carrier format.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := history.ModeUnordered
			if ordered {
				mode = history.ModeOrdered
			}

			results := make([]fingerprintResult, 2)
			for i, path := range args {
				tbl, info, err := loadTable(ctx, path)
				if err != nil {
					return err
				}
				useDateOnly := dateOnly || ctx.configValue().Fingerprint.DateOnly
				canon.StandardizeDatetimes(tbl, canon.Options{DateOnly: useDateOnly})
				digest, err := computeDigest(tbl, mode)
				if err != nil {
					return err
				}
				results[i] = fingerprintResult{
					Path:    path,
					Mode:    string(mode),
					Digest:  digest,
					Rows:    tbl.NumRows(),
					Columns: tbl.NumCols(),
					Format:  string(info.Format),
				}
			}

			match := results[0].Digest == results[1].Digest
			detail := compareDetail(results[0], results[1])

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, compareResult{
					Left:   results[0],
					Right:  results[1],
					Match:  match,
					Mode:   string(mode),
					Detail: detail,
				}); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, 2)
				for _, r := range results {
					rows = append(rows, []string{r.Path, r.Format, fmt.Sprintf("%d x %d", r.Rows, r.Columns), r.Digest})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"File", "Format", "Shape", "Digest"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
				if match {
					fmt.Fprintln(out, "Match: datasets carry identical content")
				} else if detail != "" {
					fmt.Fprintf(out, "Mismatch: %s\n", detail)
				} else {
					fmt.Fprintln(out, "Mismatch: cell contents differ")
				}
			}

			if !match {
				return fmt.Errorf("fingerprints differ (%s mode)", mode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ordered, "ordered", false, "Compare order-dependent fingerprints instead of unordered ones")
	cmd.Flags().BoolVar(&dateOnly, "date-only", false, "Canonicalize temporal columns to dates without a time component")
	return cmd
}

func compareDetail(left, right fingerprintResult) string {
	if left.Digest == right.Digest {
		return ""
	}
	if left.Columns != right.Columns {
		return fmt.Sprintf("column counts differ (%d vs %d)", left.Columns, right.Columns)
	}
	if left.Rows != right.Rows {
		return fmt.Sprintf("row counts differ (%d vs %d)", left.Rows, right.Rows)
	}
	return ""
}
