package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/models"
)

// JobTypeRequest represents the request body for creating or updating a job type
type JobTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ListJobTypes handles GET /api/v1/job-types - lists active job types.
// Open to unauthenticated callers; the job-creation UI loads the catalog
// before a session exists.
func ListJobTypes(c *gin.Context) {
	db := config.GetDB()

	var jobTypes []models.JobType
	if err := db.Order("name asc").Find(&jobTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list job types",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobTypes,
	})
}

// ListDeletedJobTypes handles GET /api/v1/job-types/all - lists soft-deleted
// job types (admins only). Active and deleted listings partition the catalog.
func ListDeletedJobTypes(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var jobTypes []models.JobType
	if err := db.Unscoped().Where("deleted_at IS NOT NULL").Order("name asc").Find(&jobTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list deleted job types",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobTypes,
	})
}

// CreateJobType handles POST /api/v1/job-types - creates a job type (admins only)
func CreateJobType(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req JobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name is required",
				"details": err.Error(),
			},
		})
		return
	}

	jobType := models.JobType{
		Name:        req.Name,
		Description: req.Description,
	}

	db := config.GetDB()
	if err := db.Create(&jobType).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_TYPE_EXISTS",
					"message": "A job type with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job type",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    jobType,
	})
}

// UpdateJobType handles PATCH /api/v1/job-types/:id - updates a job type (admins only)
func UpdateJobType(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid job type ID",
			},
		})
		return
	}

	var req JobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name is required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var jobType models.JobType
	if err := db.First(&jobType, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_TYPE_NOT_FOUND",
				"message": "Job type not found",
			},
		})
		return
	}

	// Description is written unconditionally: omitting it clears the column
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}

	if err := db.Model(&jobType).Updates(updates).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_TYPE_EXISTS",
					"message": "A job type with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update job type",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobType,
	})
}

// DeleteJobType handles DELETE /api/v1/job-types/:id - soft-deletes a job
// type (admins only). The row survives with a deletion timestamp so existing
// jobs keep a valid reference and the type shows up in the deleted listing.
func DeleteJobType(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid job type ID",
			},
		})
		return
	}

	db := config.GetDB()
	var jobType models.JobType
	if err := db.First(&jobType, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_TYPE_NOT_FOUND",
				"message": "Job type not found",
			},
		})
		return
	}

	if err := db.Delete(&jobType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete job type",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job type deleted",
	})
}
