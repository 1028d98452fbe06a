package hsn

import (
	"context"
	"fmt"
	"math"
	"strings"

	"firsgate/internal/domain"
	"firsgate/internal/port"
)

const (
	DefaultPerPage = 50
	MaxPerPage     = 200
)

// Query filters the catalogue. Code is a prefix, Category an exact
// case-insensitive match, and Search a case-insensitive substring of the
// code or description.
type Query struct {
	Code     string
	Category string
	Search   string
	Page     int
	PerPage  int
}

// Pagination describes the page of codes returned.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	PerPage      int `json:"per_page"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
}

// Result is one page of HSN codes plus catalogue-wide facts.
type Result struct {
	Codes      []domain.HSNCode `json:"codes"`
	Pagination Pagination       `json:"pagination"`
	Categories []string         `json:"categories"`
	TotalCodes int              `json:"total_codes"`
}

// Catalogue answers HSN code lookups over a repository.
type Catalogue struct {
	repo port.HSNRepository
}

// NewCatalogue creates a Catalogue.
func NewCatalogue(repo port.HSNRepository) *Catalogue {
	return &Catalogue{repo: repo}
}

// Search returns one page of codes matching q.
func (c *Catalogue) Search(ctx context.Context, q Query) (*Result, error) {
	all, err := c.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("hsn.Search: %w", err)
	}

	matched := make([]domain.HSNCode, 0, len(all))
	for i := range all {
		if q.matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}

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

	total := len(matched)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return &Result{
		Codes: matched[start:end],
		Pagination: Pagination{
			CurrentPage:  page,
			PerPage:      perPage,
			TotalResults: total,
			TotalPages:   int(math.Ceil(float64(total) / float64(perPage))),
		},
		Categories: categories(all),
		TotalCodes: len(all),
	}, nil
}

// Get returns the entry with exactly this code.
func (c *Catalogue) Get(ctx context.Context, code string) (*domain.HSNCode, error) {
	all, err := c.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("hsn.Get: %w", err)
	}
	for i := range all {
		if all[i].Code == code {
			entry := all[i]
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("hsn.Get: %s: %w", code, domain.ErrNotFound)
}

func (q *Query) matches(h *domain.HSNCode) bool {
	if q.Code != "" && !strings.HasPrefix(h.Code, q.Code) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(h.Category, q.Category) {
		return false
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(h.Code), term) &&
			!strings.Contains(strings.ToLower(h.Description), term) {
			return false
		}
	}
	return true
}

// categories lists distinct categories in first-seen order.
func categories(codes []domain.HSNCode) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range codes {
		cat := codes[i].Category
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}
