package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/models"
)

// CreateJobRequest represents the request body for creating a job
type CreateJobRequest struct {
	JobTypeID    uint    `json:"job_type_id" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Location     *string `json:"location"`
	TechnicianID *uint   `json:"technician_id"`
}

// UpdateJobStatusRequest represents the request body for a status change
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignJobRequest represents the request body for assigning a technician.
// A null technician_id unassigns the job.
type AssignJobRequest struct {
	TechnicianID *uint `json:"technician_id"`
}

// findJob loads a job by the :id route parameter, writing the 400/404
// envelope on failure
func findJob(c *gin.Context) (*models.Job, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid job ID",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var job models.Job
	if err := db.First(&job, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return nil, false
	}

	return &job, true
}

// CreateJob handles POST /api/v1/jobs - creates a job (admins and supervisors).
// The job type's name is snapshotted onto the job so later renames of the
// type do not rewrite job history.
func CreateJob(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	if !user.CanManageJobs() {
		forbid(c, "Only admins and supervisors can create jobs")
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Deleted types are excluded by the soft-delete scope, so a job can only
	// reference an active catalog entry
	var jobType models.JobType
	if err := db.First(&jobType, req.JobTypeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_TYPE_NOT_FOUND",
				"message": "Job type not found",
			},
		})
		return
	}

	if req.TechnicianID != nil {
		var technician models.User
		if err := db.First(&technician, *req.TechnicianID).Error; err != nil || !technician.IsTechnician() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Assigned user must be an existing technician",
				},
			})
			return
		}
	}

	job := models.Job{
		JobTypeID:    jobType.ID,
		JobTypeName:  jobType.Name,
		Description:  req.Description,
		Location:     req.Location,
		TechnicianID: req.TechnicianID,
		Status:       models.StatusPending,
	}

	if err := db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job",
			},
		})
		return
	}

	if err := db.Preload("JobType").Preload("Technician").First(&job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobs handles GET /api/v1/jobs - lists jobs. Admins and supervisors see
// every job (optionally filtered by status or technician_id); technicians
// see only the jobs assigned to them.
func ListJobs(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Preload("JobType").Preload("Technician").Order("created_at desc")

	if user.CanManageJobs() {
		if status := c.Query("status"); status != "" {
			query = query.Where("LOWER(status) = LOWER(?)", status)
		}
		if technicianID := c.Query("technician_id"); technicianID != "" {
			query = query.Where("technician_id = ?", technicianID)
		}
	} else {
		query = query.Where("technician_id = ?", user.ID)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list jobs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJob handles GET /api/v1/jobs/:id - returns a job with its type,
// technician, and report history (newest first) for any authenticated caller
func GetJob(c *gin.Context) {
	if _, ok := getCurrentUser(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid job ID",
			},
		})
		return
	}

	db := config.GetDB()
	var job models.Job
	if err := db.Preload("JobType").Preload("Technician").First(&job, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return
	}

	var reports []models.TechnicianReport
	if err := db.Preload("User").Where("job_id = ?", job.ID).Order("created_at desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job reports",
			},
		})
		return
	}

	attachImageURLs(reports)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"job":     job,
			"reports": reports,
		},
	})
}

// UpdateJobStatus handles PATCH /api/v1/jobs/:id/status - changes a job's
// status (assigned technician or admin). A completed job is locked: no
// request may move it to a different status, though re-marking it completed
// is accepted as a no-op.
func UpdateJobStatus(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	job, ok := findJob(c)
	if !ok {
		return
	}

	// Admins may always act; technicians only on their own job. A job with
	// no assigned technician is admin-only.
	if !user.IsAdmin() && !(user.IsTechnician() && job.IsAssignedTo(user)) {
		forbid(c, "Only the assigned technician or an admin can update this job")
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	if !job.CanChangeStatusTo(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_COMPLETED",
				"message": "Cannot change status of a completed job",
			},
		})
		return
	}

	db := config.GetDB()

	// Conditional write: the guard above read the status, but another request
	// may complete the job between that read and this write. The WHERE clause
	// re-checks the lock atomically; zero rows affected on an existing job
	// means a concurrent completion won.
	result := db.Model(&models.Job{}).
		Where("id = ? AND (LOWER(status) <> ? OR LOWER(?) = ?)",
			job.ID, "completed", req.Status, "completed").
		Update("status", req.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update job status",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_COMPLETED",
				"message": "Cannot change status of a completed job",
			},
		})
		return
	}

	if err := db.Preload("JobType").Preload("Technician").First(job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// AssignJob handles PATCH /api/v1/jobs/:id/assign - assigns or unassigns a
// technician (admins and supervisors). Completed jobs cannot be reassigned.
func AssignJob(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	if !user.CanManageJobs() {
		forbid(c, "Only admins and supervisors can assign jobs")
		return
	}

	job, ok := findJob(c)
	if !ok {
		return
	}

	if job.IsCompleted() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_COMPLETED",
				"message": "Cannot reassign a completed job",
			},
		})
		return
	}

	var req AssignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	if req.TechnicianID != nil {
		var technician models.User
		if err := db.First(&technician, *req.TechnicianID).Error; err != nil || !technician.IsTechnician() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Assigned user must be an existing technician",
				},
			})
			return
		}
	}

	if err := db.Model(job).Update("technician_id", req.TechnicianID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assign job",
			},
		})
		return
	}

	if err := db.Preload("JobType").Preload("Technician").First(job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}
