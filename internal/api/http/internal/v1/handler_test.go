package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifications struct {
	verifyFn func(ctx context.Context, rawInput string, caller service.VerifyContext) (*service.VerificationOutcome, error)
}

func (s stubVerifications) Verify(ctx context.Context, rawInput string, caller service.VerifyContext) (*service.VerificationOutcome, error) {
	return s.verifyFn(ctx, rawInput, caller)
}

type stubCitizens struct {
	createFn func(ctx context.Context, input service.CreateCitizenInput) (string, error)
	statusFn func(ctx context.Context, nin string, status domain.Status, role domain.Role) (*service.StatusUpdate, error)
	issueFn  func(ctx context.Context, nin string, issuedBy string) (string, error)
}

func (s stubCitizens) Create(ctx context.Context, input service.CreateCitizenInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s stubCitizens) SetStatus(ctx context.Context, nin string, status domain.Status, role domain.Role) (*service.StatusUpdate, error) {
	return s.statusFn(ctx, nin, status, role)
}

func (s stubCitizens) IssueIDCard(ctx context.Context, nin string, issuedBy string) (string, error) {
	return s.issueFn(ctx, nin, issuedBy)
}

type stubAdmins struct {
	loginFn func(ctx context.Context, username string, password string) (*service.AdminSession, error)
}

func (s stubAdmins) Login(ctx context.Context, username string, password string) (*service.AdminSession, error) {
	return s.loginFn(ctx, username, password)
}

type stubStats struct{}

func (stubStats) Snapshot(context.Context) (*service.StatsSnapshot, error) {
	return &service.StatsSnapshot{}, nil
}

func newTestTokenManager(t *testing.T) auth.TokenManager {
	t.Helper()

	manager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "test-signing-key",
	})
	require.NoError(t, err)

	return manager
}

func newTestRouter(t *testing.T, services *service.Services) *gin.Engine {
	t.Helper()

	return newTestRouterWithManager(t, services, newTestTokenManager(t))
}

func newTestRouterWithManager(t *testing.T, services *service.Services, manager auth.TokenManager) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	cfg := &config.Config{}
	cfg.Uploads.MaxSizeMB = 5

	handler := NewHandler(services, manager, cfg, nil)
	handler.Init(router.Group("/api"))

	return router
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))

	return out
}

func approvedCitizen(nin string) *domain.Citizen {
	return &domain.Citizen{
		NIN:       nin,
		FullName:  "Amina Hassan Ali",
		Gender:    "female",
		DOB:       "1994-03-12",
		Region:    "Banadir",
		District:  "Hodan",
		Status:    domain.StatusApproved,
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestVerifyEndpoint(t *testing.T) {
	t.Run("found returns the public record and a verification id", func(t *testing.T) {
		var gotCaller service.VerifyContext
		services := &service.Services{
			Verifications: stubVerifications{verifyFn: func(_ context.Context, rawInput string, caller service.VerifyContext) (*service.VerificationOutcome, error) {
				gotCaller = caller
				return &service.VerificationOutcome{
					Found:          true,
					Citizen:        approvedCitizen(rawInput),
					VerificationID: "VER_abc123",
				}, nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/verify",
			gin.H{"nin": "SO-2024-000001", "api_key": "partner-bank-01"}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Citizen verified successfully.", body["message"])
		assert.Equal(t, "VER_abc123", body["verification_id"])
		assert.NotEmpty(t, body["timestamp"])

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "SO-2024-000001", data["nin"])
		assert.Equal(t, "Amina Hassan Ali", data["full_name"])
		assert.Equal(t, "approved", data["status"])
		assert.Equal(t, "2024-05-01 09:30:00", data["created_at"])
		assert.NotContains(t, data, "address")
		assert.NotContains(t, data, "phone")

		assert.Equal(t, domain.VerificationAPI, gotCaller.Type)
		assert.Equal(t, "partner-bank-01", gotCaller.VerifierID)
		assert.NotEmpty(t, gotCaller.IPAddress)
	})

	t.Run("not found returns 404 with the uniform message", func(t *testing.T) {
		services := &service.Services{
			Verifications: stubVerifications{verifyFn: func(context.Context, string, service.VerifyContext) (*service.VerificationOutcome, error) {
				return &service.VerificationOutcome{Found: false}, nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/verify", gin.H{"nin": "SO-1999-999999"}, nil)

		require.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Citizen not found or not approved.", body["message"])
	})

	t.Run("malformed nin returns 400 with the format hint", func(t *testing.T) {
		services := &service.Services{
			Verifications: stubVerifications{verifyFn: func(context.Context, string, service.VerifyContext) (*service.VerificationOutcome, error) {
				return nil, service.ErrInvalidNINFormat
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/verify", gin.H{"nin": "garbage"}, nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid NIN format. Expected format: SO-YYYY-NNNNNN", body["message"])
	})

	t.Run("missing nin field returns 400 before the service is called", func(t *testing.T) {
		called := false
		services := &service.Services{
			Verifications: stubVerifications{verifyFn: func(context.Context, string, service.VerifyContext) (*service.VerificationOutcome, error) {
				called = true
				return nil, nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/verify", gin.H{}, nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid request. NIN is required.", body["message"])
		assert.False(t, called)
	})

	t.Run("internal failure returns 500 with the generic message", func(t *testing.T) {
		services := &service.Services{
			Verifications: stubVerifications{verifyFn: func(context.Context, string, service.VerifyContext) (*service.VerificationOutcome, error) {
				return nil, assert.AnError
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/verify", gin.H{"nin": "SO-2024-000001"}, nil)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Internal server error. Please try again later.", body["message"])
	})
}

func TestRegisterCitizenEndpoint(t *testing.T) {
	postForm := func(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/citizens", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		return recorder
	}

	t.Run("successful registration returns the assigned nin", func(t *testing.T) {
		var gotInput service.CreateCitizenInput
		services := &service.Services{
			Citizens: stubCitizens{createFn: func(_ context.Context, input service.CreateCitizenInput) (string, error) {
				gotInput = input
				return "SO-2026-123456", nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := postForm(router, url.Values{
			"full_name": {" Amina Hassan Ali "},
			"gender":    {"female"},
			"dob":       {"1994-03-12"},
			"region":    {"Banadir"},
			"district":  {"Hodan"},
			"address":   {"Wadada Maka Al-Mukarama 12"},
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Registration submitted successfully! Your NIN is: SO-2026-123456", body["message"])
		assert.Equal(t, "SO-2026-123456", body["nin"])

		assert.Equal(t, "Amina Hassan Ali", gotInput.FullName, "form values are trimmed")
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		services := &service.Services{
			Citizens: stubCitizens{createFn: func(context.Context, service.CreateCitizenInput) (string, error) {
				return "", &service.ValidationError{Field: "district"}
			}},
		}
		router := newTestRouter(t, services)

		recorder := postForm(router, url.Values{"full_name": {"Amina"}})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Please fill in all required fields.", body["message"])
	})

	t.Run("generation exhaustion surfaces as the generic server error", func(t *testing.T) {
		services := &service.Services{
			Citizens: stubCitizens{createFn: func(context.Context, service.CreateCitizenInput) (string, error) {
				return "", service.ErrNINGenerationExhausted
			}},
		}
		router := newTestRouter(t, services)

		recorder := postForm(router, url.Values{
			"full_name": {"Amina"}, "gender": {"female"}, "dob": {"1994-03-12"},
			"region": {"Banadir"}, "district": {"Hodan"}, "address": {"x"},
		})

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Internal server error. Please try again later.", body["message"])
	})
}

func TestAdminLoginEndpoint(t *testing.T) {
	t.Run("valid credentials return the session", func(t *testing.T) {
		services := &service.Services{
			Admins: stubAdmins{loginFn: func(_ context.Context, username, password string) (*service.AdminSession, error) {
				assert.Equal(t, "registrar", username)
				assert.Equal(t, "s3cret", password)
				return &service.AdminSession{
					AccessToken: "token-value",
					TTL:         time.Hour,
					Role:        domain.RoleOfficer,
					FullName:    "Khadija Omar",
				}, nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/admin/login",
			gin.H{"username": "registrar", "password": "s3cret"}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "token-value", body["access_token"])
		assert.Equal(t, "officer", body["role"])
		assert.Equal(t, "Khadija Omar", body["full_name"])
	})

	t.Run("bad credentials return 401 with a generic message", func(t *testing.T) {
		services := &service.Services{
			Admins: stubAdmins{loginFn: func(context.Context, string, string) (*service.AdminSession, error) {
				return nil, service.ErrInvalidCredentials
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPost, "/api/v1/admin/login",
			gin.H{"username": "registrar", "password": "wrong"}, nil)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid username or password.", body["message"])
	})
}

func TestUpdateCitizenStatusEndpoint(t *testing.T) {
	bearer := func(t *testing.T, manager auth.TokenManager, role string) map[string]string {
		t.Helper()

		token, _, err := manager.NewJWT(uuid.New(), role)
		require.NoError(t, err)

		return map[string]string{"Authorization": "Bearer " + token}
	}

	t.Run("officer token reaches the service with its role", func(t *testing.T) {
		manager := newTestTokenManager(t)

		var gotRole domain.Role
		services := &service.Services{
			Citizens: stubCitizens{statusFn: func(_ context.Context, nin string, status domain.Status, role domain.Role) (*service.StatusUpdate, error) {
				assert.Equal(t, "SO-2024-000001", nin)
				assert.Equal(t, domain.StatusApproved, status)
				gotRole = role
				return &service.StatusUpdate{Found: true}, nil
			}},
		}
		router := newTestRouterWithManager(t, services, manager)

		recorder := doJSON(router, http.MethodPut, "/api/v1/admin/citizens/SO-2024-000001/status",
			gin.H{"status": "approved"}, bearer(t, manager, "officer"))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Status updated", body["message"])
		assert.Equal(t, domain.RoleOfficer, gotRole)
	})

	t.Run("missing token is rejected before the service is called", func(t *testing.T) {
		called := false
		services := &service.Services{
			Citizens: stubCitizens{statusFn: func(context.Context, string, domain.Status, domain.Role) (*service.StatusUpdate, error) {
				called = true
				return nil, nil
			}},
		}
		router := newTestRouter(t, services)

		recorder := doJSON(router, http.MethodPut, "/api/v1/admin/citizens/SO-2024-000001/status",
			gin.H{"status": "approved"}, nil)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
	})

	t.Run("service refusal maps to 403", func(t *testing.T) {
		manager := newTestTokenManager(t)
		services := &service.Services{
			Citizens: stubCitizens{statusFn: func(context.Context, string, domain.Status, domain.Role) (*service.StatusUpdate, error) {
				return nil, service.ErrUnauthorized
			}},
		}
		router := newTestRouterWithManager(t, services, manager)

		recorder := doJSON(router, http.MethodPut, "/api/v1/admin/citizens/SO-2024-000001/status",
			gin.H{"status": "approved"}, bearer(t, manager, "citizen"))

		require.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("invalid target status is rejected by binding", func(t *testing.T) {
		manager := newTestTokenManager(t)
		called := false
		services := &service.Services{
			Citizens: stubCitizens{statusFn: func(context.Context, string, domain.Status, domain.Role) (*service.StatusUpdate, error) {
				called = true
				return nil, nil
			}},
		}
		router := newTestRouterWithManager(t, services, manager)

		recorder := doJSON(router, http.MethodPut, "/api/v1/admin/citizens/SO-2024-000001/status",
			gin.H{"status": "pending"}, bearer(t, manager, "admin"))

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid parameters", body["message"])
		assert.False(t, called)
	})

	t.Run("unknown nin maps to 404", func(t *testing.T) {
		manager := newTestTokenManager(t)
		services := &service.Services{
			Citizens: stubCitizens{statusFn: func(context.Context, string, domain.Status, domain.Role) (*service.StatusUpdate, error) {
				return &service.StatusUpdate{Found: false}, nil
			}},
		}
		router := newTestRouterWithManager(t, services, manager)

		recorder := doJSON(router, http.MethodPut, "/api/v1/admin/citizens/SO-1999-999999/status",
			gin.H{"status": "rejected"}, bearer(t, manager, "admin"))

		require.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Citizen not found", body["message"])
	})
}
