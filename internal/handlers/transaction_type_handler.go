package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teenxsky/money-flow/internal/services"
)

// TransactionTypeHandler handles transaction type reference data requests.
type TransactionTypeHandler struct {
	transactionTypeService services.TransactionTypeServicer
}

// NewTransactionTypeHandler creates a new TransactionTypeHandler.
func NewTransactionTypeHandler(transactionTypeService services.TransactionTypeServicer) *TransactionTypeHandler {
	return &TransactionTypeHandler{transactionTypeService: transactionTypeService}
}

// CreateTransactionTypeRequest represents the request payload for creating a transaction type
type CreateTransactionTypeRequest struct {
	Name string `json:"name" binding:"required,transaction_type_name"`
}

// UpdateTransactionTypeRequest represents the request payload for updating a transaction type
type UpdateTransactionTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,transaction_type_name"`
}

// TransactionTypeResponse represents a transaction type in the response
type TransactionTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create handles the creation of a new transaction type
// @Summary     Create a transaction type
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionTypeRequest true "Transaction type details"
// @Success     201 {object} TransactionTypeResponse "Transaction type created"
// @Failure     400 {object} ErrorResponse "Invalid name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/transaction-types [post]
func (h *TransactionTypeHandler) Create(c *gin.Context) {
	var req CreateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	transactionType, err := h.transactionTypeService.Create(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction_type": transactionType})
}

// List handles the retrieval of all transaction types
// @Summary     List transaction types
// @Tags        reference
// @Produce     json
// @Success     200 {array} TransactionTypeResponse "List of transaction types"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/transaction-types [get]
func (h *TransactionTypeHandler) List(c *gin.Context) {
	transactionTypes, err := h.transactionTypeService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_types": transactionTypes})
}

// GetByID handles the retrieval of a specific transaction type
// @Summary     Get transaction type by ID
// @Tags        reference
// @Produce     json
// @Param       id path string true "Transaction type ID"
// @Success     200 {object} TransactionTypeResponse "Transaction type details"
// @Failure     400 {object} ErrorResponse "Invalid transaction type ID"
// @Failure     404 {object} ErrorResponse "Transaction type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/transaction-types/{id} [get]
func (h *TransactionTypeHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionType, err := h.transactionTypeService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_type": transactionType})
}

// Update handles updating a transaction type
// @Summary     Update transaction type
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction type ID"
// @Param       request body UpdateTransactionTypeRequest true "Updated transaction type fields"
// @Success     200 {object} TransactionTypeResponse "Updated transaction type"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Transaction type not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/transaction-types/{id} [put]
func (h *TransactionTypeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	transactionType, err := h.transactionTypeService.Update(id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_type": transactionType})
}

// Delete handles deleting a transaction type
// @Summary     Delete transaction type
// @Description Delete a transaction type; blocked while categories or transactions reference it
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction type ID"
// @Success     200 {object} MessageResponse "Transaction type deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction type ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Transaction type not found"
// @Failure     409 {object} ErrorResponse "Transaction type is referenced"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/transaction-types/{id} [delete]
func (h *TransactionTypeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionTypeService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction type deleted successfully"})
}
