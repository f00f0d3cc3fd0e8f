package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/middleware"
	"github.com/hannah-brooks/job-dispatch-api/models"
)

// getCurrentUser resolves the authenticated caller to their users row. Every
// protected handler starts with this lookup, so the error responses (401 for
// a broken context, 404 for a valid token with no profile) are written here
// and the caller just returns when ok is false.
func getCurrentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// forbid writes the standard 403 envelope. Used when the caller is
// authenticated but not permitted for the specific resource.
func forbid(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": message,
		},
	})
}

// requireAdmin resolves the caller and rejects non-admins with 403
func requireAdmin(c *gin.Context) (*models.User, bool) {
	user, ok := getCurrentUser(c)
	if !ok {
		return nil, false
	}
	if !user.IsAdmin() {
		forbid(c, "Administrator access required")
		return nil, false
	}
	return user, true
}
