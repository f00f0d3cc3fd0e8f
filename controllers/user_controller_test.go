package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockAuth0Server serves /userinfo with canned responses keyed by the
// bearer token, standing in for Auth0 during provisioning tests
func setupMockAuth0Server(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			http.NotFound(w, r)
			return
		}

		token := r.Header.Get("Authorization")
		body, ok := responses[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	originalCfg := config.GetConfig()
	config.SetConfig(&config.Config{Auth0Domain: server.URL, GoEnv: "test"})
	t.Cleanup(func() { config.SetConfig(originalCfg) })

	return server
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		auth0ID        string
		role           string
		accessToken    string
		userInfoBody   string
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "Provisions technician by default",
			auth0ID:        "auth0|newtech",
			accessToken:    "token-tech",
			userInfoBody:   `{"sub": "auth0|newtech", "email": "newtech@example.com", "name": "New Tech"}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "newtech@example.com", data["email"])
				assert.Equal(t, "New Tech", data["name"])
				assert.Equal(t, models.RoleTechnician, data["role"])
				assert.Equal(t, true, data["is_available"])
			},
		},
		{
			name:           "Role claim promotes to admin",
			auth0ID:        "auth0|newadmin",
			role:           models.RoleAdmin,
			accessToken:    "token-admin",
			userInfoBody:   `{"sub": "auth0|newadmin", "email": "newadmin@example.com", "name": "New Admin"}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, models.RoleAdmin, data["role"])
			},
		},
		{
			name:           "Missing email is rejected",
			auth0ID:        "auth0|noemail",
			accessToken:    "token-noemail",
			userInfoBody:   `{"sub": "auth0|noemail", "name": "No Email"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MISSING_EMAIL",
		},
		{
			name:           "Missing name is rejected",
			auth0ID:        "auth0|noname",
			accessToken:    "token-noname",
			userInfoBody:   `{"sub": "auth0|noname", "email": "noname@example.com"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MISSING_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			setupMockAuth0Server(t, map[string]string{
				"Bearer " + tt.accessToken: tt.userInfoBody,
			})

			router := setupTestRouter()
			router.POST("/users", mockAuthMiddleware(tt.auth0ID, tt.role, tt.accessToken), CreateUser)

			w, response := performJSON(t, router, http.MethodPost, "/users", nil)

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

func TestCreateUser_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|existing", "Existing User", "existing@example.com", models.RoleTechnician)

	setupMockAuth0Server(t, map[string]string{
		"Bearer token-dup": `{"sub": "auth0|existing", "email": "existing@example.com", "name": "Existing User"}`,
	})

	router := setupTestRouter()
	router.POST("/users", mockAuthMiddleware("auth0|existing", "", "token-dup"), CreateUser)

	w, response := performJSON(t, router, http.MethodPost, "/users", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USER_EXISTS", errorCode(response))
}

func TestCreateUser_Auth0Failure(t *testing.T) {
	setupTestDB(t)
	// No canned response for this token: the mock returns 401
	setupMockAuth0Server(t, map[string]string{})

	router := setupTestRouter()
	router.POST("/users", mockAuthMiddleware("auth0|broken", "", "token-broken"), CreateUser)

	w, response := performJSON(t, router, http.MethodPost, "/users", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AUTH0_ERROR", errorCode(response))
}

func TestGetMyProfile(t *testing.T) {
	db := setupTestDB(t)
	technician := createTestUser(t, db, "auth0|tech", "Tech User", "tech@example.com", models.RoleTechnician)

	t.Run("returns the caller's profile", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/users/me", mockAuthMiddleware(technician.Auth0ID, "", "mock-token"), GetMyProfile)

		w, response := performJSON(t, router, http.MethodGet, "/users/me", nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "tech@example.com", data["email"])
		assert.Equal(t, models.RoleTechnician, data["role"])
	})

	t.Run("unknown caller gets not found", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/users/me", mockAuthMiddleware("auth0|ghost", "", "mock-token"), GetMyProfile)

		w, response := performJSON(t, router, http.MethodGet, "/users/me", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(response))
	})
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)

	admin := createTestUser(t, db, "auth0|admin", "Admin User", "admin@example.com", models.RoleAdmin)
	createTestUser(t, db, "auth0|tech-b", "Bravo Tech", "bravo@example.com", models.RoleTechnician)
	createTestUser(t, db, "auth0|tech-a", "Alpha Tech", "alpha@example.com", models.RoleTechnician)

	t.Run("lists all users sorted by name", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/users", mockAuthMiddleware(admin.Auth0ID, "", "mock-token"), ListUsers)

		w, response := performJSON(t, router, http.MethodGet, "/users", nil)

		require.Equal(t, http.StatusOK, w.Code)
		users := response["data"].([]interface{})
		require.Len(t, users, 3)
		assert.Equal(t, "Admin User", users[0].(map[string]interface{})["name"])
		assert.Equal(t, "Alpha Tech", users[1].(map[string]interface{})["name"])
		assert.Equal(t, "Bravo Tech", users[2].(map[string]interface{})["name"])
	})

	t.Run("filters by role case-insensitively", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/users", mockAuthMiddleware(admin.Auth0ID, "", "mock-token"), ListUsers)

		w, response := performJSON(t, router, http.MethodGet, "/users?role=Technician", nil)

		require.Equal(t, http.StatusOK, w.Code)
		users := response["data"].([]interface{})
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Equal(t, models.RoleTechnician, u.(map[string]interface{})["role"])
		}
	})
}
