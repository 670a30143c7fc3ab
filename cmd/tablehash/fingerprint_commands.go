package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tablehash/internal/canon"
	"tablehash/internal/fingerprint"
	"tablehash/internal/history"
	"tablehash/internal/loader"
	"tablehash/internal/logging"
	"tablehash/internal/rowfilter"
	"tablehash/internal/table"
)

type fingerprintFlags struct {
	where    string
	dateOnly bool
	noStore  bool
}

func (f *fingerprintFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.where, "where", "", "Row filter expression evaluated against column names")
	cmd.Flags().BoolVar(&f.dateOnly, "date-only", false, "Canonicalize temporal columns to dates without a time component")
	cmd.Flags().BoolVar(&f.noStore, "no-store", false, "Skip recording the fingerprint in the history database")
}

func newOrderedCommand(ctx *commandContext) *cobra.Command {
	flags := &fingerprintFlags{}
	cmd := &cobra.Command{
		Use:   "ordered <file>",
		Short: "Compute the order-dependent fingerprint of a dataset",
		Long: "Compute a digest that changes whenever rows or columns are reordered.\n" +
			"Use it to detect any change to the dataset, including permutations.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(ctx, cmd, args[0], history.ModeOrdered, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newUnorderedCommand(ctx *commandContext) *cobra.Command {
	flags := &fingerprintFlags{}
	cmd := &cobra.Command{
		Use:   "unordered <file>",
		Short: "Compute the order-independent fingerprint of a dataset",
		Long: "Compute a digest that is stable under any row or column permutation.\n" +
			"Two files with the same cells in any order produce the same digest.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(ctx, cmd, args[0], history.ModeUnordered, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// fingerprintResult is the JSON envelope emitted with --json.
type fingerprintResult struct {
	Path     string   `json:"path"`
	Mode     string   `json:"mode"`
	Digest   string   `json:"digest"`
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	Format   string   `json:"format"`
	Filtered bool     `json:"filtered,omitempty"`
	Temporal []string `json:"temporal_columns,omitempty"`
}

func runFingerprint(ctx *commandContext, cmd *cobra.Command, path string, mode history.Mode, flags *fingerprintFlags) error {
	cfg := ctx.configValue()
	if cfg == nil {
		return fmt.Errorf("configuration unavailable")
	}
	logger := ctx.ensureLogger(cmd)

	tbl, info, err := loadTable(ctx, path)
	if err != nil {
		return err
	}
	logger.Debug("loaded dataset",
		logging.Args(
			logging.String("path", path),
			logging.String("format", string(info.Format)),
			logging.Int("rows", tbl.NumRows()),
			logging.Int("columns", tbl.NumCols()),
		)...)

	filtered := false
	if flags.where != "" {
		filter, err := rowfilter.Compile(flags.where)
		if err != nil {
			return fmt.Errorf("compile row filter: %w", err)
		}
		before := tbl.NumRows()
		tbl, err = filter.Apply(tbl)
		if err != nil {
			return fmt.Errorf("apply row filter: %w", err)
		}
		filtered = true
		logger.Debug("applied row filter",
			logging.Args(
				logging.String("expression", filter.Source()),
				logging.Int("rows_before", before),
				logging.Int("rows_after", tbl.NumRows()),
			)...)
	}

	dateOnly := flags.dateOnly || cfg.Fingerprint.DateOnly
	events := canon.StandardizeDatetimes(tbl, canon.Options{DateOnly: dateOnly})
	temporal := make([]string, 0, len(events))
	for _, ev := range events {
		temporal = append(temporal, ev.Column)
		logger.Debug("standardized temporal column",
			logging.Args(
				logging.String("column", ev.Column),
				logging.String("layout", ev.Layout),
				logging.Int("cells", ev.Cells),
			)...)
	}

	digest, err := computeDigest(tbl, mode)
	if err != nil {
		return err
	}

	if !flags.noStore && cfg.Fingerprint.StoreHistory {
		if err := recordHistory(cmd, cfg.HistoryDBPath(), history.Entry{
			Path:    path,
			Mode:    mode,
			Digest:  digest,
			Rows:    tbl.NumRows(),
			Columns: tbl.NumCols(),
		}); err != nil {
			// A failed history write must not fail the digest.
			logger.Warn("record fingerprint history", logging.Args(logging.Error(err))...)
		}
	}

	if ctx.jsonOutput() {
		return writeJSON(cmd, fingerprintResult{
			Path:     path,
			Mode:     string(mode),
			Digest:   digest,
			Rows:     tbl.NumRows(),
			Columns:  tbl.NumCols(),
			Format:   string(info.Format),
			Filtered: filtered,
			Temporal: temporal,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), digest)
	return nil
}

func computeDigest(tbl *table.Table, mode history.Mode) (string, error) {
	switch mode {
	case history.ModeOrdered:
		return fingerprint.OrderDependent(tbl)
	case history.ModeUnordered:
		return fingerprint.OrderIndependent(tbl)
	default:
		return "", fmt.Errorf("unknown fingerprint mode %q", mode)
	}
}

func loadTable(ctx *commandContext, path string) (*table.Table, loader.Info, error) {
	cfg := ctx.configValue()
	opts := loader.Options{}
	if cfg != nil {
		opts.SampleBytes = cfg.Loader.CSVSampleBytes
		opts.DecimalSampleRows = cfg.Loader.DecimalSampleRows
		opts.NoGuessFallback = !cfg.Loader.GuessFallback
	}
	tbl, info, err := loader.Load(path, opts)
	if err != nil {
		return nil, loader.Info{}, fmt.Errorf("load %s: %w", path, err)
	}
	return tbl, info, nil
}

func recordHistory(cmd *cobra.Command, dbPath string, entry history.Entry) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Record(cmd.Context(), entry)
	return err
}
