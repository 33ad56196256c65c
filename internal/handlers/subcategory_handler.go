package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teenxsky/money-flow/internal/services"
)

// SubcategoryHandler handles subcategory reference data requests.
type SubcategoryHandler struct {
	subcategoryService services.SubcategoryServicer
}

// NewSubcategoryHandler creates a new SubcategoryHandler.
func NewSubcategoryHandler(subcategoryService services.SubcategoryServicer) *SubcategoryHandler {
	return &SubcategoryHandler{subcategoryService: subcategoryService}
}

// CreateSubcategoryRequest represents the request payload for creating a subcategory
type CreateSubcategoryRequest struct {
	Name       string `json:"name" binding:"required,subcategory_name"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// UpdateSubcategoryRequest represents the request payload for updating a subcategory.
// Omitted fields keep their current values.
type UpdateSubcategoryRequest struct {
	Name       *string `json:"name" binding:"omitempty,subcategory_name"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
}

// SubcategoryResponse represents a subcategory in the response
type SubcategoryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// Create handles the creation of a new subcategory
// @Summary     Create a subcategory
// @Description Create a subcategory paired with its statically mapped category
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubcategoryRequest true "Subcategory details"
// @Success     201 {object} SubcategoryResponse "Subcategory created"
// @Failure     400 {object} ErrorResponse "Invalid name or hierarchy mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/subcategories [post]
func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	subcategory, err := h.subcategoryService.Create(req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subcategory": subcategory})
}

// List handles the retrieval of all subcategories
// @Summary     List subcategories
// @Description Get all subcategories with their categories, alphabetical by name
// @Tags        reference
// @Produce     json
// @Success     200 {array} SubcategoryResponse "List of subcategories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/subcategories [get]
func (h *SubcategoryHandler) List(c *gin.Context) {
	subcategories, err := h.subcategoryService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategories": subcategories})
}

// GetByID handles the retrieval of a specific subcategory
// @Summary     Get subcategory by ID
// @Tags        reference
// @Produce     json
// @Param       id path string true "Subcategory ID"
// @Success     200 {object} SubcategoryResponse "Subcategory details"
// @Failure     400 {object} ErrorResponse "Invalid subcategory ID"
// @Failure     404 {object} ErrorResponse "Subcategory not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/subcategories/{id} [get]
func (h *SubcategoryHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcategory, err := h.subcategoryService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategory": subcategory})
}

// Update handles updating a subcategory
// @Summary     Update subcategory
// @Description Partially update a subcategory; hierarchy is re-checked against the merged result
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subcategory ID"
// @Param       request body UpdateSubcategoryRequest true "Updated subcategory fields"
// @Success     200 {object} SubcategoryResponse "Updated subcategory"
// @Failure     400 {object} ErrorResponse "Invalid input or hierarchy mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Subcategory or category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/subcategories/{id} [put]
func (h *SubcategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	subcategory, err := h.subcategoryService.Update(id, req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategory": subcategory})
}

// Delete handles deleting a subcategory
// @Summary     Delete subcategory
// @Description Delete a subcategory; blocked while transactions reference it
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subcategory ID"
// @Success     200 {object} MessageResponse "Subcategory deleted"
// @Failure     400 {object} ErrorResponse "Invalid subcategory ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Subcategory not found"
// @Failure     409 {object} ErrorResponse "Subcategory is referenced"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/subcategories/{id} [delete]
func (h *SubcategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.subcategoryService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
}
