package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func mustAdd(t *testing.T, a, b string) json.Number {
	t.Helper()
	return json.Number(decimal.RequireFromString(a).Add(decimal.RequireFromString(b)).String())
}
