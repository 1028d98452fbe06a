package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"firsgate/internal/domain"
	"firsgate/internal/obslog"
	"firsgate/internal/port"
	"firsgate/internal/repository/postgres"
)

// logReader reads the log tables when the database is enabled and the log
// files otherwise. Dates default to today in the server timezone.
func (a *app) logReader() (port.LogReader, func(), error) {
	loc, err := time.LoadLocation(a.cfg.Server.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timezone %q: %w", a.cfg.Server.Timezone, err)
	}
	if !a.cfg.DB.Enabled {
		files := obslog.NewFileSink(a.cfg.Paths.SuccessLog, a.cfg.Paths.ErrorLog)
		return obslog.New(files, nil, obslog.WithLocation(loc)), func() {}, nil
	}
	db, err := postgres.NewDB(&a.cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	table := obslog.NewTableSink(postgres.NewLogRepo(db))
	return obslog.New(table, nil, obslog.WithLocation(loc)), func() { _ = db.Close() }, nil
}

func (a *app) logsCmd() *cobra.Command {
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Read the signing activity logs",
	}

	var (
		kind  string
		limit int
	)
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Print the newest log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := domain.LogKind(kind)
			if k != domain.LogKindSuccess && k != domain.LogKindError {
				return fmt.Errorf("--type must be success or error, got %q", kind)
			}
			reader, closeFn, err := a.logReader()
			if err != nil {
				return err
			}
			defer closeFn()

			entries, err := reader.Recent(cmd.Context(), k, limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []domain.LogEntry{}
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	recent.Flags().StringVar(&kind, "type", string(domain.LogKindSuccess), "success or error")
	recent.Flags().IntVar(&limit, "limit", 20, "maximum entries")

	var date string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count success and error entries for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, closeFn, err := a.logReader()
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := reader.Statistics(cmd.Context(), date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
	stats.Flags().StringVar(&date, "date", "", "day (YYYY-MM-DD), defaults to today")

	logs.AddCommand(recent, stats)
	return logs
}
