package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hannah-brooks/job-dispatch-api/models"
	"github.com/hannah-brooks/job-dispatch-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)

	admin := createTestUser(t, db, "auth0|admin", "Admin User", "admin@example.com", models.RoleAdmin)
	assigned := createTestUser(t, db, "auth0|assigned", "Assigned Tech", "assigned@example.com", models.RoleTechnician)
	other := createTestUser(t, db, "auth0|other", "Other Tech", "other@example.com", models.RoleTechnician)

	jobType := models.JobType{Name: "Plumbing"}
	require.NoError(t, db.Create(&jobType).Error)

	tests := []struct {
		name           string
		auth0ID        string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:    "Assigned technician submits report",
			auth0ID: assigned.Auth0ID,
			requestBody: map[string]interface{}{
				"notes":  "Replaced faulty valve, tested water pressure",
				"images": []string{"reports/before.jpg", "reports/after.jpg"},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Replaced faulty valve, tested water pressure", data["notes"])
				user := data["user"].(map[string]interface{})
				assert.Equal(t, "Assigned Tech", user["name"])
			},
		},
		{
			name:    "Admin submits report on any job",
			auth0ID: admin.Auth0ID,
			requestBody: map[string]interface{}{
				"notes": "Site inspection complete",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Non-assigned technician is forbidden",
			auth0ID: other.Auth0ID,
			requestBody: map[string]interface{}{
				"notes": "Not my job",
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
		{
			name:           "Missing notes is rejected",
			auth0ID:        assigned.Auth0ID,
			requestBody:    map[string]interface{}{"images": []string{}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Whitespace-only notes are rejected",
			auth0ID:        assigned.Auth0ID,
			requestBody:    map[string]interface{}{"notes": "   \t  "},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := seedJob(t, db, jobType, &assigned.ID, "Pending")

			router := setupTestRouter()
			router.POST("/jobs/:id/report", mockAuthMiddleware(tt.auth0ID, "", "mock-token"), CreateReport)

			w, response := performJSON(t, router, http.MethodPost,
				fmt.Sprintf("/jobs/%d/report", job.ID), tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateReport_DefaultsAndSignature(t *testing.T) {
	db := setupTestDB(t)
	assigned := createTestUser(t, db, "auth0|assigned", "Assigned Tech", "assigned@example.com", models.RoleTechnician)

	jobType := models.JobType{Name: "Electrical"}
	require.NoError(t, db.Create(&jobType).Error)
	job := seedJob(t, db, jobType, &assigned.ID, "Pending")

	router := setupTestRouter()
	router.POST("/jobs/:id/report", mockAuthMiddleware(assigned.Auth0ID, "", "mock-token"), CreateReport)

	w, _ := performJSON(t, router, http.MethodPost,
		fmt.Sprintf("/jobs/%d/report", job.ID),
		map[string]interface{}{
			"notes":     "Rewired panel",
			"signature": "data:image/png;base64,iVBORw0KGgo=",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.TechnicianReport
	require.NoError(t, db.Where("job_id = ?", job.ID).First(&stored).Error)

	var images []string
	require.NoError(t, json.Unmarshal(stored.Images, &images))
	assert.Empty(t, images, "Omitted images should be stored as an empty list")

	require.NotNil(t, stored.Signature)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", *stored.Signature)
	assert.Equal(t, assigned.ID, stored.UserID)
}

func TestCreateReport_JobNotFound(t *testing.T) {
	db := setupTestDB(t)
	assigned := createTestUser(t, db, "auth0|assigned", "Assigned Tech", "assigned@example.com", models.RoleTechnician)

	router := setupTestRouter()
	router.POST("/jobs/:id/report", mockAuthMiddleware(assigned.Auth0ID, "", "mock-token"), CreateReport)

	w, response := performJSON(t, router, http.MethodPost, "/jobs/999/report",
		map[string]interface{}{"notes": "Ghost job"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "JOB_NOT_FOUND", errorCode(response))
}

func TestCreateReport_PresignsImageKeys(t *testing.T) {
	db := setupTestDB(t)
	assigned := createTestUser(t, db, "auth0|assigned", "Assigned Tech", "assigned@example.com", models.RoleTechnician)

	jobType := models.JobType{Name: "HVAC Repair"}
	require.NoError(t, db.Create(&jobType).Error)
	job := seedJob(t, db, jobType, &assigned.ID, "Pending")

	mockService := services.NewMockImageService()
	originalService := services.GetImageService()
	services.SetImageService(mockService)
	defer services.SetImageService(originalService)

	fileHeader := createImageFileHeader(t, "unit.jpg", []byte("fake-jpeg-bytes"))
	key, err := mockService.UploadImage(fileHeader)
	require.NoError(t, err)

	router := setupTestRouter()
	router.POST("/jobs/:id/report", mockAuthMiddleware(assigned.Auth0ID, "", "mock-token"), CreateReport)

	w, response := performJSON(t, router, http.MethodPost,
		fmt.Sprintf("/jobs/%d/report", job.ID),
		map[string]interface{}{
			"notes":  "Condenser replaced",
			"images": []string{key, "https://external.example.com/photo.png", "reports/missing.jpg"},
		})
	require.Equal(t, http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	urls := data["image_urls"].([]interface{})
	require.Len(t, urls, 3)
	assert.Contains(t, urls[0].(string), "mock=true", "Stored keys should be presigned")
	assert.Equal(t, "https://external.example.com/photo.png", urls[1],
		"Full URLs should pass through untouched")
	assert.Equal(t, "reports/missing.jpg", urls[2],
		"Keys that fail to resolve should pass through unchanged")
}
