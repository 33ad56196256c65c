package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teenxsky/money-flow/internal/services"
)

// ReferenceHandler handles bulk reference data operations.
type ReferenceHandler struct {
	seedService services.SeedServicer
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(seedService services.SeedServicer) *ReferenceHandler {
	return &ReferenceHandler{seedService: seedService}
}

// Seed handles loading the built-in reference data set
// @Summary     Seed reference data
// @Description Load the built-in transaction types, categories, subcategories, and statuses. Existing rows are kept; pass clear=true to wipe reference data first (refused while transactions exist). Safe to call repeatedly.
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       clear query bool false "Clear existing reference data before seeding" default(false)
// @Success     200 {object} services.SeedReport "Rows created per kind"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     409 {object} ErrorResponse "Reference data is in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/seed [post]
func (h *ReferenceHandler) Seed(c *gin.Context) {
	clear := c.Query("clear") == "true"

	report, err := h.seedService.Load(clear)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
