package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teenxsky/money-flow/internal/services"
)

// StatusHandler handles status reference data requests.
type StatusHandler struct {
	statusService services.StatusServicer
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService services.StatusServicer) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// CreateStatusRequest represents the request payload for creating a status
type CreateStatusRequest struct {
	Name string `json:"name" binding:"required,status_name"`
}

// UpdateStatusRequest represents the request payload for updating a status
type UpdateStatusRequest struct {
	Name *string `json:"name" binding:"omitempty,status_name"`
}

// StatusResponse represents a status in the response
type StatusResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create handles the creation of a new status
// @Summary     Create a status
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateStatusRequest true "Status details"
// @Success     201 {object} StatusResponse "Status created"
// @Failure     400 {object} ErrorResponse "Invalid name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/statuses [post]
func (h *StatusHandler) Create(c *gin.Context) {
	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	status, err := h.statusService.Create(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": status})
}

// List handles the retrieval of all statuses
// @Summary     List statuses
// @Tags        reference
// @Produce     json
// @Success     200 {array} StatusResponse "List of statuses"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/statuses [get]
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// GetByID handles the retrieval of a specific status
// @Summary     Get status by ID
// @Tags        reference
// @Produce     json
// @Param       id path string true "Status ID"
// @Success     200 {object} StatusResponse "Status details"
// @Failure     400 {object} ErrorResponse "Invalid status ID"
// @Failure     404 {object} ErrorResponse "Status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/statuses/{id} [get]
func (h *StatusHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statusService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Update handles updating a status
// @Summary     Update status
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Status ID"
// @Param       request body UpdateStatusRequest true "Updated status fields"
// @Success     200 {object} StatusResponse "Updated status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Status not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/statuses/{id} [put]
func (h *StatusHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	status, err := h.statusService.Update(id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Delete handles deleting a status
// @Summary     Delete status
// @Description Delete a status; blocked while transactions reference it
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Status ID"
// @Success     200 {object} MessageResponse "Status deleted"
// @Failure     400 {object} ErrorResponse "Invalid status ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Status not found"
// @Failure     409 {object} ErrorResponse "Status is referenced"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reference/statuses/{id} [delete]
func (h *StatusHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.statusService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status deleted successfully"})
}
