package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
)

// UpdateAvailabilityRequest represents the request body for the availability
// toggle. A pointer distinguishes a missing field from an explicit false, and
// binding rejects non-boolean values such as the string "true".
type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// UpdateAvailability handles POST /api/v1/technician/availability - toggles
// the caller's own availability flag (technicians only). There is no target
// parameter; the operation always applies to the caller.
func UpdateAvailability(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	if !user.IsTechnician() {
		forbid(c, "Only technicians can update availability")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Field 'available' must be a boolean",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Model(user).Update("is_available", *req.Available).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update availability",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"isAvailable": *req.Available,
	})
}
