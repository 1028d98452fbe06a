package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/testutil"
)

// setupEnv points every path at a temp dir and returns the dir and the
// private half of the generated key bundle.
func setupEnv(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()
	dir := t.TempDir()
	keys, priv := testutil.WriteKeyBundle(t, dir)
	t.Setenv("FIRSGATE_PATHS_CRYPTO_KEYS", keys)
	t.Setenv("FIRSGATE_PATHS_INVOICE_INDEX", filepath.Join(dir, "invoices.json"))
	t.Setenv("FIRSGATE_PATHS_JSON", filepath.Join(dir, "json"))
	t.Setenv("FIRSGATE_PATHS_ENCRYPTED", filepath.Join(dir, "encrypted"))
	t.Setenv("FIRSGATE_PATHS_QRCODES", filepath.Join(dir, "qrcodes"))
	t.Setenv("FIRSGATE_PATHS_SUCCESS_LOG", filepath.Join(dir, "api_success.log"))
	t.Setenv("FIRSGATE_PATHS_ERROR_LOG", filepath.Join(dir, "api_error.log"))
	t.Setenv("FIRSGATE_FIRS_API_ENABLED", "false")
	t.Setenv("FIRSGATE_DB_ENABLED", "false")
	t.Setenv("FIRSGATE_LOG_LEVEL", "error")
	return dir, priv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncrypt(t *testing.T) {
	_, priv := setupEnv(t)
	signed := testutil.SampleIRN + ".1761264000"

	out, err := execute(t, "encrypt", signed)
	require.NoError(t, err)

	ciphertext, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
	require.NoError(t, err)
	assert.JSONEq(t, `{"irn":"`+signed+`","certificate":"`+testutil.SampleCert+`"}`, string(plain))
}

func TestKeysTest(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "keys", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestKeysTest_MissingBundle(t *testing.T) {
	setupEnv(t)
	t.Setenv("FIRSGATE_PATHS_CRYPTO_KEYS", filepath.Join(t.TempDir(), "missing.txt"))

	_, err := execute(t, "keys", "test")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir, _ := setupEnv(t)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(testutil.ValidInvoiceJSON), 0o600))
	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	var res struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Valid)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"irn":"nope"}`), 0o600))
	_, err = execute(t, "validate", bad)
	assert.ErrorIs(t, err, errInvalid)
}

func TestSearch_EmptyIndex(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "search", "--irn", "PFNL*", "--per-page", "5")
	require.NoError(t, err)

	var res struct {
		Results        []any             `json:"results"`
		FiltersApplied map[string]string `json:"filters_applied"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Empty(t, res.Results)
	assert.Equal(t, "PFNL*", res.FiltersApplied["irn"])
	assert.Equal(t, "5", res.FiltersApplied["per_page"])
}

func TestLogsStats_NoLogs(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "logs", "stats", "--date", "2025-10-24")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_count": 0`)

	_, err = execute(t, "logs", "recent", "--type", "debug")
	assert.Error(t, err)
}

func TestQueryName(t *testing.T) {
	assert.Equal(t, "business_id", queryName("business-id"))
	assert.Equal(t, "irn", queryName("irn"))
}

func TestSearch_CSV(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "search", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "IRN,Signed IRN,Business ID,Issue Date,Due Date,Payment Status,Signed,Signed At,Supplier,Customer,Total Amount,Currency,Encrypted File,QR Code File\n", out)

	_, err = execute(t, "search", "--format", "xml")
	assert.Error(t, err)
}
