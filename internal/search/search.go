// Package search filters, sorts, and paginates index snapshots.
package search

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"firsgate/internal/domain"
)

// Sort fields.
const (
	SortIssueDate   = "issue_date"
	SortTotalAmount = "total_amount"
	SortSignedAt    = "signed_at"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Query is a parsed search request. Zero values mean "no filter".
type Query struct {
	IRN           string
	BusinessID    string
	DateFrom      string
	DateTo        string
	PaymentStatus string
	Supplier      string
	Customer      string
	Currency      string
	MinAmount     *float64
	MaxAmount     *float64
	Signed        *bool

	SortBy    string
	SortOrder string
	Page      int
	PerPage   int

	// Applied echoes the non-empty request parameters.
	Applied map[string]string
}

// ParseQuery reads a Query from URL query parameters. Unparseable numeric
// filters are ignored.
func ParseQuery(values url.Values) Query {
	q := Query{
		IRN:           strings.TrimSpace(values.Get("irn")),
		BusinessID:    strings.TrimSpace(values.Get("business_id")),
		DateFrom:      strings.TrimSpace(values.Get("date_from")),
		DateTo:        strings.TrimSpace(values.Get("date_to")),
		PaymentStatus: strings.TrimSpace(values.Get("payment_status")),
		Supplier:      strings.TrimSpace(values.Get("supplier")),
		Customer:      strings.TrimSpace(values.Get("customer")),
		Currency:      strings.TrimSpace(values.Get("currency")),
		SortBy:        values.Get("sort_by"),
		SortOrder:     values.Get("sort_order"),
		Applied:       map[string]string{},
	}
	if v, err := strconv.ParseFloat(values.Get("min_amount"), 64); err == nil {
		q.MinAmount = &v
	}
	if v, err := strconv.ParseFloat(values.Get("max_amount"), 64); err == nil {
		q.MaxAmount = &v
	}
	if raw := values.Get("signed"); raw != "" {
		b := parseBool(raw)
		q.Signed = &b
	}
	q.Page, _ = strconv.Atoi(values.Get("page"))
	if n, err := strconv.Atoi(values.Get("per_page")); err == nil {
		// An explicit per_page below 1 means 1; only an absent one means the default.
		q.PerPage = max(n, 1)
	}

	for key := range values {
		if v := values.Get(key); v != "" && v != "0" {
			q.Applied[key] = v
		}
	}
	return q
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// Pagination describes the page returned by Search.
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	TotalResults int  `json:"total_results"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// Result is one page of matching records.
type Result struct {
	Results        []domain.IndexRecord `json:"results"`
	Pagination     Pagination           `json:"pagination"`
	FiltersApplied map[string]string    `json:"filters_applied"`
}

// Search applies q to records. records is not modified.
func Search(records []domain.IndexRecord, q Query) *Result {
	matched := make([]domain.IndexRecord, 0, len(records))
	for i := range records {
		if q.matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	sortRecords(matched, q.SortBy, q.SortOrder)
	return paginate(matched, q)
}

func (q *Query) matches(r *domain.IndexRecord) bool {
	if q.IRN != "" && !matchIRN(r.IRN, q.IRN) {
		return false
	}
	if q.BusinessID != "" && r.BusinessID != q.BusinessID {
		return false
	}
	if q.DateFrom != "" && r.IssueDate < q.DateFrom {
		return false
	}
	if q.DateTo != "" && r.IssueDate > q.DateTo {
		return false
	}
	if q.PaymentStatus != "" && !strings.EqualFold(string(r.PaymentStatus), q.PaymentStatus) {
		return false
	}
	if q.Supplier != "" && !containsFold(r.Summary.Supplier, q.Supplier) {
		return false
	}
	if q.Customer != "" && !containsFold(r.Summary.Customer, q.Customer) {
		return false
	}
	if q.MinAmount != nil && r.Summary.TotalAmount < *q.MinAmount {
		return false
	}
	if q.MaxAmount != nil && r.Summary.TotalAmount > *q.MaxAmount {
		return false
	}
	if q.Currency != "" && r.Summary.Currency != q.Currency {
		return false
	}
	if q.Signed != nil && r.Signed != *q.Signed {
		return false
	}
	return true
}

// matchIRN treats a trailing * as a prefix wildcard; otherwise the pattern
// matches case-insensitively anywhere in the IRN.
func matchIRN(irn, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(irn, strings.TrimRight(pattern, "*"))
	}
	return containsFold(irn, pattern)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortRecords(records []domain.IndexRecord, by, order string) {
	asc := strings.EqualFold(order, "asc")
	key := sortKey(by)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := key(&records[i]), key(&records[j])
		if asc {
			return a < b
		}
		return a > b
	})
}

func sortKey(by string) func(*domain.IndexRecord) float64 {
	switch by {
	case SortTotalAmount:
		return func(r *domain.IndexRecord) float64 { return r.Summary.TotalAmount }
	case SortSignedAt:
		return func(r *domain.IndexRecord) float64 { return unix(r.SignedAt) }
	default:
		return func(r *domain.IndexRecord) float64 { return unix(r.IssueDate) }
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// unix parses a stored date; unparseable values sort as the epoch.
func unix(s string) float64 {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Unix())
		}
	}
	return 0
}

func paginate(records []domain.IndexRecord, q Query) *Result {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	switch {
	case perPage == 0:
		perPage = DefaultPerPage
	case perPage < 1:
		perPage = 1
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}

	total := len(records)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	// Compare before multiplying so a huge page cannot overflow the offset.
	start := total
	if page-1 <= total/perPage {
		start = min((page-1)*perPage, total)
	}
	end := start + perPage
	if end > total {
		end = total
	}

	applied := q.Applied
	if applied == nil {
		applied = map[string]string{}
	}
	return &Result{
		Results: records[start:end],
		Pagination: Pagination{
			CurrentPage:  page,
			PerPage:      perPage,
			TotalResults: total,
			TotalPages:   totalPages,
			HasNext:      page < totalPages,
			HasPrevious:  page > 1,
		},
		FiltersApplied: applied,
	}
}
