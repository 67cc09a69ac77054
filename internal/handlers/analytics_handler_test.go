package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/driver-quiz-service/internal/analysis"
	"github.com/SAP-F-2025/driver-quiz-service/internal/auth"
	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/driver-quiz-service/internal/services"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
)

const testSecret = "handler-secret"

type mockAnalyticsService struct {
	mock.Mock
}

func (m *mockAnalyticsService) BuildFilter(query models.AnalyticsQuery) (repositories.AnalyticsFilter, error) {
	args := m.Called(query)
	return args.Get(0).(repositories.AnalyticsFilter), args.Error(1)
}

func (m *mockAnalyticsService) RunComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) (*services.ComprehensiveAnalysisReport, error) {
	args := m.Called(ctx, filter)
	report, _ := args.Get(0).(*services.ComprehensiveAnalysisReport)
	return report, args.Error(1)
}

func (m *mockAnalyticsService) ExportComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockAnalyticsService) InvalidateCache(ctx context.Context, filter repositories.AnalyticsFilter) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}

func setupRouter(service services.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRouter(NewHandlerManager(service, auth.NewHMACVerifier(testSecret), logger))
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func get(router *gin.Engine, target, authorization string) *httptest.ResponseRecorder {
	return request(router, http.MethodGet, target, authorization)
}

func request(router *gin.Engine, method, target, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(setupRouter(new(mockAnalyticsService)), "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"driver-quiz-service"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetComprehensiveAnalysis(t *testing.T) {
	service := new(mockAnalyticsService)
	router := setupRouter(service)

	driverID := uint(7)
	query := models.AnalyticsQuery{StartDate: "2024-03-01", DriverID: &driverID, Language: "en"}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := repositories.AnalyticsFilter{StartDate: &start, DriverID: &driverID, Language: "en"}

	report := &services.ComprehensiveAnalysisReport{
		Report:      analysis.Report{Overview: analysis.Overview{TotalSessions: 3, OverallAccuracy: 66.67}},
		Filter:      filter,
		GeneratedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	service.On("BuildFilter", query).Return(filter, nil).Once()
	service.On("RunComprehensiveAnalysis", mock.Anything, filter).Return(report, nil).Once()

	w := get(router, "/api/v1/analytics/comprehensive?start_date=2024-03-01&driver_id=7&language=en", bearer(t, auth.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
		Data    struct {
			Overview    analysis.Overview `json:"overview"`
			GeneratedAt time.Time         `json:"generated_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Comprehensive analysis generated", body.Message)
	assert.Equal(t, 3, body.Data.Overview.TotalSessions)
	assert.Equal(t, 66.67, body.Data.Overview.OverallAccuracy)
	assert.True(t, report.GeneratedAt.Equal(body.Data.GeneratedAt))

	service.AssertExpectations(t)
}

func TestGetComprehensiveAnalysis_Auth(t *testing.T) {
	service := new(mockAnalyticsService)
	router := setupRouter(service)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/analytics/comprehensive", "").Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/api/v1/analytics/comprehensive", bearer(t, auth.RoleViewer)).Code)

	service.AssertNotCalled(t, "RunComprehensiveAnalysis", mock.Anything, mock.Anything)
}

func TestGetComprehensiveAnalysis_Errors(t *testing.T) {
	tests := []struct {
		name     string
		buildErr error
		runErr   error
		status   int
	}{
		{"validation", services.ValidationErrors{{Field: "language", Message: "must be a two-letter lowercase language code"}}, nil, http.StatusBadRequest},
		{"date range", nil, services.ErrInvalidDateRange, http.StatusBadRequest},
		{"driver not found", nil, services.ErrDriverNotFound, http.StatusNotFound},
		{"store failure", nil, errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockAnalyticsService)
			router := setupRouter(service)

			service.On("BuildFilter", mock.Anything).Return(repositories.AnalyticsFilter{}, tt.buildErr).Once()
			if tt.buildErr == nil {
				service.On("RunComprehensiveAnalysis", mock.Anything, mock.Anything).Return(nil, tt.runErr).Once()
			}

			w := get(router, "/api/v1/analytics/comprehensive", bearer(t, auth.RoleAdmin))

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestGetComprehensiveAnalysis_BadDriverID(t *testing.T) {
	service := new(mockAnalyticsService)
	router := setupRouter(service)

	w := get(router, "/api/v1/analytics/comprehensive?driver_id=abc", bearer(t, auth.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "BuildFilter", mock.Anything)
}

func TestExportComprehensiveAnalysis(t *testing.T) {
	service := new(mockAnalyticsService)
	router := setupRouter(service)

	payload := []byte("PK-fake-xlsx")
	service.On("BuildFilter", models.AnalyticsQuery{}).Return(repositories.AnalyticsFilter{}, nil).Once()
	service.On("ExportComprehensiveAnalysis", mock.Anything, repositories.AnalyticsFilter{}).Return(payload, nil).Once()

	w := get(router, "/api/v1/analytics/comprehensive/export", bearer(t, auth.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"driver-quiz-analysis-")
	assert.Equal(t, payload, w.Body.Bytes())
}

func TestInvalidateCache(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target string
		query  models.AnalyticsQuery
		filter repositories.AnalyticsFilter
		scope  string
	}{
		{"all", "/api/v1/analytics/cache", models.AnalyticsQuery{}, repositories.AnalyticsFilter{}, "all"},
		{"single filter", "/api/v1/analytics/cache?end_date=2024-03-01", models.AnalyticsQuery{EndDate: "2024-03-01"}, repositories.AnalyticsFilter{EndDate: &end}, "filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockAnalyticsService)
			router := setupRouter(service)

			service.On("BuildFilter", tt.query).Return(tt.filter, nil).Once()
			service.On("InvalidateCache", mock.Anything, tt.filter).Return(nil).Once()

			w := request(router, http.MethodDelete, tt.target, bearer(t, auth.RoleAdmin))

			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Message string            `json:"message"`
				Data    map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Analytics cache invalidated", body.Message)
			assert.Equal(t, tt.scope, body.Data["scope"])
			service.AssertExpectations(t)
		})
	}
}

func TestInvalidateCache_Failures(t *testing.T) {
	service := new(mockAnalyticsService)
	router := setupRouter(service)

	assert.Equal(t, http.StatusForbidden, request(router, http.MethodDelete, "/api/v1/analytics/cache", bearer(t, auth.RoleViewer)).Code)
	service.AssertNotCalled(t, "InvalidateCache", mock.Anything, mock.Anything)

	service.On("BuildFilter", models.AnalyticsQuery{}).Return(repositories.AnalyticsFilter{}, nil).Once()
	service.On("InvalidateCache", mock.Anything, repositories.AnalyticsFilter{}).Return(errors.New("redis down")).Once()

	w := request(router, http.MethodDelete, "/api/v1/analytics/cache", bearer(t, auth.RoleAdmin))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
