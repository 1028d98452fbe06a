package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"firsgate/internal/csvexport"
	"firsgate/internal/domain"
	"firsgate/internal/index"
	"firsgate/internal/search"
	"firsgate/internal/service"
	"firsgate/internal/storage/local"
	"firsgate/internal/upstream"
	"firsgate/internal/validator"
)

var errInvalid = errors.New("invoice is invalid")

// invoiceService opens the index and builds the read-side service. The
// returned close function releases the index.
func (a *app) invoiceService() (service.InvoiceService, func(), error) {
	idx, err := index.Open(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewInvoiceService(
		validator.NewEngine(a.cfg.Validation),
		idx,
		local.NewStore(a.cfg.Paths),
		upstream.NewClient(a.cfg.FIRS),
		nil,
	)
	return svc, func() { _ = idx.Close() }, nil
}

func (a *app) validateCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "validate <invoice.json>",
		Short: "Run full validation on an invoice file",
		Long: `Run every validation stage on an invoice file and print the findings.
With --remote the IRN is also submitted to the FIRS validation endpoint.
Exits non-zero when the invoice has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read invoice: %w", err)
			}
			inv, err := domain.DecodeInvoice(data)
			if err != nil {
				return err
			}

			svc, closeFn, err := a.invoiceService()
			if err != nil {
				return err
			}
			defer closeFn()

			res := svc.Validate(cmd.Context(), inv)
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if remote {
				out, err := svc.RemoteValidate(cmd.Context(), inv)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			}
			if !res.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "also validate the IRN with the FIRS API")
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the invoice index",
		Example: `  firsctl search --irn 'PFNL0001*'
  firsctl search --supplier acme --date-from 2025-01-01 --sort-by total_amount --sort-order asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "csv" {
				return fmt.Errorf("--format must be json or csv, got %q", format)
			}
			values := url.Values{}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if f.Name != "format" {
					values.Set(queryName(f.Name), f.Value.String())
				}
			})

			svc, closeFn, err := a.invoiceService()
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Search(cmd.Context(), search.ParseQuery(values))
			if err != nil {
				return err
			}
			if format == "csv" {
				return csvexport.Export(cmd.OutOrStdout(), res.Results, false)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	f := cmd.Flags()
	f.String("irn", "", "exact IRN, prefix with trailing *, or substring")
	f.String("business-id", "", "business ID")
	f.String("date-from", "", "issue date lower bound (YYYY-MM-DD)")
	f.String("date-to", "", "issue date upper bound (YYYY-MM-DD)")
	f.String("payment-status", "", "payment status")
	f.String("supplier", "", "supplier name substring")
	f.String("customer", "", "customer name substring")
	f.String("currency", "", "currency code")
	f.Float64("min-amount", 0, "minimum total amount")
	f.Float64("max-amount", 0, "maximum total amount")
	f.Bool("signed", false, "signed flag")
	f.String("sort-by", "issue_date", "issue_date, total_amount, or signed_at")
	f.String("sort-order", "desc", "asc or desc")
	f.Int("page", 1, "page number")
	f.Int("per-page", search.DefaultPerPage, "results per page (max 100)")
	f.String("format", "json", "output format: json or csv")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	var (
		businessID string
		remote     bool
	)
	cmd := &cobra.Command{
		Use:   "status <irn>",
		Short: "Show the signing status of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.invoiceService()
			if err != nil {
				return err
			}
			defer closeFn()

			if remote {
				res, err := svc.RemoteStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}
			st, err := svc.Status(cmd.Context(), args[0], businessID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().StringVar(&businessID, "business-id", "", "business ID that must own the invoice")
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the FIRS API instead of the local index")
	return cmd
}

// queryName maps a flag name to its search query parameter.
func queryName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}
