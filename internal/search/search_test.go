package search_test

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
	"firsgate/internal/search"
)

func records(n int) []domain.IndexRecord {
	out := make([]domain.IndexRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.IndexRecord{
			IRN:           fmt.Sprintf("PFNL%04d-9D3009-202510%02d", i, (i%28)+1),
			BusinessID:    "biz-a",
			IssueDate:     fmt.Sprintf("2025-10-%02d", (i%28)+1),
			PaymentStatus: domain.PaymentStatusUnpaid,
			Signed:        true,
			SignedAt:      fmt.Sprintf("2025-10-%02dT10:00:00Z", (i%28)+1),
			Summary: domain.RecordSummary{
				Supplier:    "Acme Supplies Ltd",
				Customer:    "Globex Nigeria",
				TotalAmount: float64(i * 100),
				Currency:    "NGN",
			},
		})
	}
	return out
}

func TestSearch_Pagination(t *testing.T) {
	res := search.Search(records(25), search.ParseQuery(url.Values{"per_page": {"10"}, "page": {"3"}}))

	assert.Len(t, res.Results, 5)
	assert.Equal(t, search.Pagination{
		CurrentPage:  3,
		PerPage:      10,
		TotalResults: 25,
		TotalPages:   3,
		HasNext:      false,
		HasPrevious:  true,
	}, res.Pagination)
}

func TestSearch_PaginationClamps(t *testing.T) {
	tests := []struct {
		name        string
		values      url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, 20},
		{"negative page", url.Values{"page": {"-4"}}, 1, 20},
		{"per_page too large", url.Values{"per_page": {"500"}}, 1, 100},
		{"per_page negative", url.Values{"per_page": {"-1"}}, 1, 1},
		{"per_page zero", url.Values{"per_page": {"0"}}, 1, 1},
		{"garbage", url.Values{"page": {"x"}, "per_page": {"y"}}, 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := search.Search(records(3), search.ParseQuery(tt.values))
			assert.Equal(t, tt.wantPage, res.Pagination.CurrentPage)
			assert.Equal(t, tt.wantPerPage, res.Pagination.PerPage)
		})
	}
}

func TestSearch_PageBeyondEnd(t *testing.T) {
	res := search.Search(records(5), search.ParseQuery(url.Values{"page": {"9"}}))
	assert.Empty(t, res.Results)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrevious)
}

func TestSearch_PageNearMaxInt(t *testing.T) {
	for _, page := range []string{strconv.Itoa(math.MaxInt), strconv.Itoa(math.MaxInt / 20)} {
		t.Run(page, func(t *testing.T) {
			var res *search.Result
			require.NotPanics(t, func() {
				res = search.Search(records(5), search.ParseQuery(url.Values{"page": {page}}))
			})
			assert.Empty(t, res.Results)
			assert.Equal(t, 5, res.Pagination.TotalResults)
			assert.False(t, res.Pagination.HasNext)
		})
	}
}

func TestSearch_IRNFilter(t *testing.T) {
	recs := records(12)

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"exact", recs[0].IRN, 1},
		{"prefix wildcard", "PFNL001*", 3},
		{"prefix is case sensitive", "pfnl001*", 0},
		{"substring case insensitive", "0005-9d3009", 1},
		{"no match", "ZZZ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := search.Search(recs, search.ParseQuery(url.Values{"irn": {tt.pattern}}))
			assert.Equal(t, tt.want, res.Pagination.TotalResults)
		})
	}
}

func TestSearch_Filters(t *testing.T) {
	recs := records(10)
	recs[0].PaymentStatus = domain.PaymentStatusPaid
	recs[1].BusinessID = "biz-b"
	recs[2].Summary.Currency = "USD"
	recs[3].Signed = false
	recs[4].Summary.Supplier = "Dangote Cement"

	tests := []struct {
		name   string
		values url.Values
		want   int
	}{
		{"payment status case insensitive", url.Values{"payment_status": {"paid"}}, 1},
		{"business id", url.Values{"business_id": {"biz-b"}}, 1},
		{"currency exact", url.Values{"currency": {"USD"}}, 1},
		{"signed false", url.Values{"signed": {"false"}}, 1},
		{"signed true", url.Values{"signed": {"1"}}, 9},
		{"supplier substring", url.Values{"supplier": {"dangote"}}, 1},
		{"customer substring", url.Values{"customer": {"GLOBEX"}}, 10},
		{"amount range", url.Values{"min_amount": {"300"}, "max_amount": {"500"}}, 3},
		{"date range", url.Values{"date_from": {"2025-10-03"}, "date_to": {"2025-10-05"}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := search.Search(recs, search.ParseQuery(tt.values))
			assert.Equal(t, tt.want, res.Pagination.TotalResults)
		})
	}
}

func TestSearch_Sorting(t *testing.T) {
	recs := records(5)

	res := search.Search(recs, search.ParseQuery(url.Values{}))
	require.Len(t, res.Results, 5)
	assert.Equal(t, "2025-10-06", res.Results[0].IssueDate, "issue_date desc by default")

	res = search.Search(recs, search.ParseQuery(url.Values{"sort_by": {"total_amount"}, "sort_order": {"asc"}}))
	assert.InDelta(t, 100.0, res.Results[0].Summary.TotalAmount, 1e-9)
	assert.InDelta(t, 500.0, res.Results[4].Summary.TotalAmount, 1e-9)

	res = search.Search(recs, search.ParseQuery(url.Values{"sort_by": {"signed_at"}, "sort_order": {"DESC"}}))
	assert.Equal(t, "2025-10-06T10:00:00Z", res.Results[0].SignedAt)
}

func TestSearch_FiltersApplied(t *testing.T) {
	res := search.Search(records(1), search.ParseQuery(url.Values{
		"supplier": {"acme"},
		"customer": {""},
		"page":     {"1"},
	}))
	assert.Equal(t, map[string]string{"supplier": "acme", "page": "1"}, res.FiltersApplied)
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	recs := records(3)
	first := recs[0].IRN
	search.Search(recs, search.ParseQuery(url.Values{"sort_order": {"desc"}}))
	assert.Equal(t, first, recs[0].IRN)
}
