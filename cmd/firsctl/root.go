package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"firsgate/internal/config"
	"firsgate/internal/logger"
)

var version = "1.0.0"

// app carries the configuration loaded before any subcommand runs.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "firsctl",
		Short: "Operate a firsgate e-invoice signing gateway",
		Long: `firsctl works on the key bundle, invoice index, and activity logs of a
firsgate deployment. It reads the same FIRSGATE_* environment variables and
optional .env file as the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.SetupWithWriter(cfg.Log, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		a.encryptCmd(),
		a.validateCmd(),
		a.searchCmd(),
		a.statusCmd(),
		a.logsCmd(),
		a.keysCmd(),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
