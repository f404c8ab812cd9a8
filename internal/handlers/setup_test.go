package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/handlers"
	"github.com/SscSPs/bills_app/internal/middleware"
	"github.com/SscSPs/bills_app/internal/platform/config"
	"github.com/SscSPs/bills_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testUserID = "owner"

// HandlerTestSuite wires the real router to mocked services.
type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	cfg                *config.Config
	mockAccountService *MockAccountService
	mockOverview       *MockOverviewService
	mockExport         *MockExportService
	mockForms          *MockFormSessionService
	mockAuth           *MockAuthService
}

func (suite *HandlerTestSuite) testConfig() *config.Config {
	return &config.Config{
		IsProduction:       true,
		AuthEnabled:        true,
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "bills-test",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		LoginRateLimit:     "100-M",
	}
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = suite.testConfig()
	suite.mockAccountService = new(MockAccountService)
	suite.mockOverview = new(MockOverviewService)
	suite.mockExport = new(MockExportService)
	suite.mockForms = new(MockFormSessionService)
	suite.mockAuth = new(MockAuthService)
	suite.buildRouter()
}

func (suite *HandlerTestSuite) buildRouter() {
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	container := &portssvc.ServiceContainer{
		Account:     suite.mockAccountService,
		Overview:    suite.mockOverview,
		FormSession: suite.mockForms,
		Export:      suite.mockExport,
		Auth:        suite.mockAuth,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, suite.cfg, container, nil))
}

// generateTestToken creates a JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer, time.Now())
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, target any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

func (suite *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}
