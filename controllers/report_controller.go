package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/models"
	"github.com/hannah-brooks/job-dispatch-api/services"
	"gorm.io/datatypes"
)

// CreateReportRequest represents the request body for submitting a report
type CreateReportRequest struct {
	Notes     string   `json:"notes" binding:"required"`
	Images    []string `json:"images"`
	Signature *string  `json:"signature"`
}

// CreateReport handles POST /api/v1/jobs/:id/report - submits a completion
// report against a job (assigned technician or admin). Reports are append
// only: each submission adds to the job's history and nothing is updated or
// retracted.
func CreateReport(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	job, ok := findJob(c)
	if !ok {
		return
	}

	if !user.IsAdmin() && !(user.IsTechnician() && job.IsAssignedTo(user)) {
		forbid(c, "Only the assigned technician or an admin can submit a report for this job")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Notes are required",
				"details": err.Error(),
			},
		})
		return
	}

	// binding:"required" rejects an absent notes field but accepts pure
	// whitespace; reject that too
	if strings.TrimSpace(req.Notes) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Notes are required",
			},
		})
		return
	}

	// Images are stored as an ordered JSON array, defaulting to empty
	images := req.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to serialize report images",
			},
		})
		return
	}

	report := models.TechnicianReport{
		JobID:     job.ID,
		UserID:    user.ID,
		Notes:     req.Notes,
		Images:    datatypes.JSON(imagesJSON),
		Signature: req.Signature,
	}

	db := config.GetDB()
	if err := db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create report",
			},
		})
		return
	}

	if err := db.Preload("User").First(&report, report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load report details",
			},
		})
		return
	}

	attachReportImageURLs(&report)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    report,
	})
}

// attachImageURLs resolves stored image keys to presigned URLs for a slice
// of reports. Skipped entirely when no image service is configured; keys
// that fail to resolve are passed through unchanged.
func attachImageURLs(reports []models.TechnicianReport) {
	for i := range reports {
		attachReportImageURLs(&reports[i])
	}
}

func attachReportImageURLs(report *models.TechnicianReport) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	var keys []string
	if err := json.Unmarshal(report.Images, &keys); err != nil || len(keys) == 0 {
		return
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		// Absolute URLs (e.g. externally hosted images) pass through
		if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
			urls = append(urls, key)
			continue
		}
		url, err := imageService.GetImageURL(key)
		if err != nil || url == "" {
			urls = append(urls, key)
			continue
		}
		urls = append(urls, url)
	}
	report.ImageURLs = urls
}
