// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
)

const (
	SampleIRN        = "PFNL0001-9D3009-20251024"
	SampleBusinessID = "4a5b6c7d-1e2f-4a3b-8c9d-0e1f2a3b4c5d"
	SampleCert       = "TEST-CERTIFICATE/with+slashes=="
)

// ValidInvoiceJSON is an invoice that passes full validation without warnings.
const ValidInvoiceJSON = `{
  "irn": "PFNL0001-9D3009-20251024",
  "business_id": "4a5b6c7d-1e2f-4a3b-8c9d-0e1f2a3b4c5d",
  "issue_date": "2025-10-24",
  "due_date": "2025-11-23",
  "invoice_type_code": "380",
  "document_currency_code": "NGN",
  "accounting_supplier_party": {"party": {"party_name": {"name": "Acme Supplies Ltd"}}},
  "accounting_customer_party": {"party": {"party_name": {"name": "Globex Nigeria"}}},
  "tax_total": {
    "tax_exclusive_amount": 1000,
    "tax_percent": 7.5,
    "tax_amount": 75,
    "tax_inclusive_amount": 1075
  },
  "legal_monetary_total": {"line_extension_amount": 1000, "payable_amount": 1075},
  "invoice_line": [
    {
      "invoiced_quantity": 4,
      "price": {"price_amount": 150},
      "line_extension_amount": 600,
      "hsn_code": "8471.30",
      "product_category": "Electronics",
      "item": {"name": "Keyboard", "description": "Mechanical keyboard", "sellers_item_identification": "18000001"}
    },
    {
      "invoiced_quantity": 2,
      "price_amount": 200,
      "line_extension_amount": 400,
      "hsn_code": "8471.60",
      "product_category": "Electronics",
      "item": {"name": "Mouse", "description": "Wireless mouse", "sellers_item_identification": "18000002"}
    }
  ]
}`

// ValidInvoice returns a fresh decoded copy of ValidInvoiceJSON.
func ValidInvoice(t testing.TB) domain.Invoice {
	t.Helper()
	inv, err := domain.DecodeInvoice([]byte(ValidInvoiceJSON))
	require.NoError(t, err)
	return inv
}

// InvoiceWithIRN returns a valid invoice carrying the given IRN.
func InvoiceWithIRN(t testing.TB, irn string) domain.Invoice {
	t.Helper()
	inv := ValidInvoice(t)
	inv["irn"] = irn
	return inv
}

// Line returns the i-th invoice line of inv for in-place edits.
func Line(inv domain.Invoice, i int) map[string]any {
	return inv["invoice_line"].([]any)[i].(map[string]any)
}

// WriteKeyBundle generates an RSA key pair, writes a key bundle file into dir,
// and returns its path with the private key for decrypting in assertions.
func WriteKeyBundle(t testing.TB, dir string) (string, *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	bundle, err := json.Marshal(map[string]string{
		"public_key":  base64.StdEncoding.EncodeToString(pemBytes),
		"certificate": SampleCert,
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "crypto_keys.txt")
	require.NoError(t, os.WriteFile(path, bundle, 0o600))
	return path, priv
}
