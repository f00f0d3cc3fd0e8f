package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/models"
)

// DeletionCheck handles GET /api/v1/admin/users/:id/deletion-check - counts
// a user's jobs that are neither completed nor cancelled, so the admin UI
// can warn before removing a technician who still has open work. Read-only.
func DeletionCheck(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid user ID",
			},
		})
		return
	}

	db := config.GetDB()
	var incomplete int64
	err = db.Model(&models.Job{}).
		Where("technician_id = ? AND LOWER(status) NOT IN (?, ?)", uint(id), "completed", "cancelled").
		Count(&incomplete).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count incomplete jobs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"incomplete": incomplete,
		},
	})
}
