package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"firsgate/internal/signer"
)

func (a *app) encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt <signed-irn>",
		Short:   "Encrypt a signed IRN and print the Base64 ciphertext",
		Example: `  firsctl encrypt PFNL0001-9D3009-20251024.1761264000`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sgn, err := signer.NewFromFile(a.cfg.Paths.CryptoKeys)
			if err != nil {
				return err
			}
			defer sgn.Close()

			signedIRN := strings.TrimSpace(args[0])
			plain := signedIRN
			if i := strings.LastIndex(signedIRN, "."); i > 0 {
				plain = signedIRN[:i]
			}
			out, err := sgn.Encrypt(plain, signedIRN)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func (a *app) keysCmd() *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Inspect the signing key bundle",
	}
	keys.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Load the key bundle and run the encryption self-test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sgn, err := signer.NewFromFile(a.cfg.Paths.CryptoKeys)
			if err != nil {
				return err
			}
			defer sgn.Close()
			if err := sgn.SelfTest(); err != nil {
				return fmt.Errorf("encryption self-test failed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "key bundle %s OK\n", a.cfg.Paths.CryptoKeys)
			return err
		},
	})
	return keys
}
