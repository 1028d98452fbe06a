// Command seedhsn converts an HSN code spreadsheet into the catalogue JSON
// file served by /invoice/hsn-codes, and optionally loads it into the
// hsn_codes table.
// Usage: seedhsn <workbook.xlsx> [--sheet NAME] [--out PATH] [--db]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"firsgate/internal/config"
	"firsgate/internal/filex"
	"firsgate/internal/hsn"
	"firsgate/internal/logger"
	"firsgate/internal/repository/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		sheet string
		out   string
		toDB  bool
	)
	cmd := &cobra.Command{
		Use:   "seedhsn <workbook.xlsx>",
		Short: "Convert an HSN spreadsheet into the HSN catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Setup(cfg.Log); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			if out == "" {
				out = cfg.Paths.HSNCodes
			}
			return run(cmd.Context(), cfg, args[0], sheet, out, toDB)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().StringVar(&out, "out", "", "output JSON path (default: paths.hsn_codes)")
	cmd.Flags().BoolVar(&toDB, "db", false, "also upsert the codes into the hsn_codes table")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, xlsxPath, sheet, out string, toDB bool) error {
	f, err := os.Open(xlsxPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	codes, err := hsn.ParseWorkbook(f, sheet)
	if err != nil {
		return err
	}
	log.Info().Int("codes", len(codes)).Str("workbook", xlsxPath).Msg("workbook parsed")

	data, err := json.MarshalIndent(codes, "", "    ")
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := filex.WriteLocked(out, data); err != nil {
		return fmt.Errorf("write catalogue: %w", err)
	}
	log.Info().Str("path", out).Msg("catalogue written")

	if !toDB {
		return nil
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := postgres.UpsertHSNCodes(ctx, db, codes); err != nil {
		return err
	}
	log.Info().Int("codes", len(codes)).Msg("hsn_codes table updated")
	return nil
}
