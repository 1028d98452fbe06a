package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"firsgate/internal/hsn"
)

// HSNSearcher looks up HSN codes.
type HSNSearcher interface {
	Search(ctx context.Context, q hsn.Query) (*hsn.Result, error)
}

// HSNHandler serves the HSN code catalogue.
type HSNHandler struct {
	catalogue HSNSearcher
}

// NewHSNHandler creates a new HSNHandler.
func NewHSNHandler(catalogue HSNSearcher) *HSNHandler {
	return &HSNHandler{catalogue: catalogue}
}

// List handles GET /api/v1/invoice/hsn-codes
// @Summary List HSN codes
// @Description Search the HSN code catalogue by code prefix, category, or free text
// @Tags hsn
// @Produce json
// @Param code query string false "Code prefix"
// @Param category query string false "Category (case-insensitive)"
// @Param search query string false "Substring of code or description"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Codes per page (max 200)" default(50)
// @Success 200 {object} Response{data=hsn.Result} "HSN codes retrieved"
// @Failure 500 {object} ErrorResponseBody "Catalogue unavailable"
// @Security APIKeyAuth
// @Router /invoice/hsn-codes [get]
func (h *HSNHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	res, err := h.catalogue.Search(c.Request.Context(), hsn.Query{
		Code:     c.Query("code"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, "HSN codes retrieved", res)
}
