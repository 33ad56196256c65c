package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/pagination"
	"github.com/teenxsky/money-flow/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	StatusID          string  `json:"status_id" binding:"required,uuid"`
	TransactionTypeID string  `json:"transaction_type_id" binding:"required,uuid"`
	CategoryID        string  `json:"category_id" binding:"required,uuid"`
	SubcategoryID     *string `json:"subcategory_id" binding:"omitempty,uuid"`
	Amount            string  `json:"amount" binding:"required,money"`
	Comment           string  `json:"comment" binding:"omitempty,max=50"`
}

// UpdateTransactionRequest represents the request payload for partially
// updating a transaction. Omitted fields keep their current values; set
// clear_subcategory to remove the subcategory.
type UpdateTransactionRequest struct {
	StatusID          *string `json:"status_id" binding:"omitempty,uuid"`
	TransactionTypeID *string `json:"transaction_type_id" binding:"omitempty,uuid"`
	CategoryID        *string `json:"category_id" binding:"omitempty,uuid"`
	SubcategoryID     *string `json:"subcategory_id" binding:"omitempty,uuid"`
	ClearSubcategory  bool    `json:"clear_subcategory"`
	Amount            *string `json:"amount" binding:"omitempty,money"`
	Comment           *string `json:"comment" binding:"omitempty,max=50"`
}

// listTransactionsQuery holds the query parameters for listing transactions.
// Date and amount filters use double-underscore lookup suffixes.
type listTransactionsQuery struct {
	CreatedAtGTE   string `form:"created_at__gte"`
	CreatedAtLTE   string `form:"created_at__lte"`
	CreatedAtGT    string `form:"created_at__gt"`
	CreatedAtLT    string `form:"created_at__lt"`
	CreatedAtExact string `form:"created_at__exact"`

	Status          string `form:"status" binding:"omitempty,uuid"`
	TransactionType string `form:"transaction_type" binding:"omitempty,uuid"`
	Category        string `form:"category" binding:"omitempty,uuid"`
	Subcategory     string `form:"subcategory" binding:"omitempty,uuid"`

	AmountGTE   string `form:"amount__gte" binding:"omitempty,money"`
	AmountLTE   string `form:"amount__lte" binding:"omitempty,money"`
	AmountExact string `form:"amount__exact" binding:"omitempty,money"`

	Ordering string `form:"ordering" binding:"omitempty,transaction_ordering"`

	pagination.PageRequest
}

// Create handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction for the authenticated user; the referenced status, type, category, and optional subcategory must form a consistent hierarchy
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or hierarchy mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced row not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, parseErr := decimal.NewFromString(req.Amount)
	if parseErr != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Invalid amount"))
		return
	}

	transaction, err := h.transactionService.Create(
		userID, req.StatusID, req.TransactionTypeID, req.CategoryID,
		req.SubcategoryID, amount, req.Comment,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// List handles the retrieval of the authenticated user's transactions
// @Summary     List transactions
// @Description Get the authenticated user's transactions with optional filters and ordering
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       created_at__gte query string false "Created at or after (RFC3339 or YYYY-MM-DD)"
// @Param       created_at__lte query string false "Created at or before (RFC3339 or YYYY-MM-DD)"
// @Param       created_at__gt query string false "Created strictly after (RFC3339 or YYYY-MM-DD)"
// @Param       created_at__lt query string false "Created strictly before (RFC3339 or YYYY-MM-DD)"
// @Param       created_at__exact query string false "Created exactly at (RFC3339 or YYYY-MM-DD)"
// @Param       status query string false "Status ID"
// @Param       transaction_type query string false "Transaction type ID"
// @Param       category query string false "Category ID"
// @Param       subcategory query string false "Subcategory ID"
// @Param       amount__gte query string false "Amount greater than or equal"
// @Param       amount__lte query string false "Amount less than or equal"
// @Param       amount__exact query string false "Exact amount"
// @Param       ordering query string false "Sort order" Enums(created_at, -created_at, amount, -amount) default(-created_at)
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} map[string]interface{} "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.PageRequest.Defaults()

	filter, err := buildTransactionFilter(query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := h.transactionService.List(userID, filter, query.Ordering, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": page.Data,
		"page":         page.Page,
		"page_size":    page.PageSize,
		"total_items":  page.TotalItems,
		"total_pages":  page.TotalPages,
	})
}

// GetByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Transaction belongs to another user"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Update handles partially updating a transaction
// @Summary     Update transaction
// @Description Partially update a transaction; the merged result is re-validated against the reference hierarchy
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction fields"
// @Success     200 {object} map[string]interface{} "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or hierarchy mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Transaction belongs to another user"
// @Failure     404 {object} ErrorResponse "Transaction or referenced row not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		StatusID:          req.StatusID,
		TransactionTypeID: req.TransactionTypeID,
		CategoryID:        req.CategoryID,
		SubcategoryID:     req.SubcategoryID,
		ClearSubcategory:  req.ClearSubcategory,
		Comment:           req.Comment,
	}
	if req.Amount != nil {
		amount, parseErr := decimal.NewFromString(*req.Amount)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Invalid amount"))
			return
		}
		update.Amount = &amount
	}

	transaction, err := h.transactionService.Update(userID, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Delete handles deleting a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Transaction belongs to another user"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// buildTransactionFilter converts validated query parameters into a service
// filter, parsing dates and decimal amounts.
func buildTransactionFilter(query listTransactionsQuery) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	dates := []struct {
		raw  string
		name string
		dst  **time.Time
	}{
		{query.CreatedAtGTE, "created_at__gte", &filter.CreatedAtGTE},
		{query.CreatedAtLTE, "created_at__lte", &filter.CreatedAtLTE},
		{query.CreatedAtGT, "created_at__gt", &filter.CreatedAtGT},
		{query.CreatedAtLT, "created_at__lt", &filter.CreatedAtLT},
		{query.CreatedAtExact, "created_at__exact", &filter.CreatedAtExact},
	}
	for _, d := range dates {
		if d.raw == "" {
			continue
		}
		t, err := parseFilterTime(d.raw)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"Invalid "+d.name+", use RFC3339 or YYYY-MM-DD")
		}
		*d.dst = &t
	}

	if query.Status != "" {
		filter.StatusID = &query.Status
	}
	if query.TransactionType != "" {
		filter.TransactionTypeID = &query.TransactionType
	}
	if query.Category != "" {
		filter.CategoryID = &query.Category
	}
	if query.Subcategory != "" {
		filter.SubcategoryID = &query.Subcategory
	}

	amounts := []struct {
		raw  string
		name string
		dst  **decimal.Decimal
	}{
		{query.AmountGTE, "amount__gte", &filter.AmountGTE},
		{query.AmountLTE, "amount__lte", &filter.AmountLTE},
		{query.AmountExact, "amount__exact", &filter.AmountExact},
	}
	for _, a := range amounts {
		if a.raw == "" {
			continue
		}
		amount, err := decimal.NewFromString(a.raw)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+a.name)
		}
		*a.dst = &amount
	}

	return filter, nil
}

// parseFilterTime accepts RFC3339 timestamps or bare dates.
func parseFilterTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
