package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/inflight/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) Validate(token string) (*auth.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func newAuthRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(validator))
	router.GET("/me", func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": identity.UserID})
	})
	return router
}

func TestAuth_MissingToken(t *testing.T) {
	validator := &MockTokenValidator{}
	router := newAuthRouter(validator)

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())
	}
	validator.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &MockTokenValidator{}
	router := newAuthRouter(validator)
	validator.On("Validate", "expired").Return(nil, auth.ErrInvalidToken).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
}

func TestAuth_ValidToken(t *testing.T) {
	validator := &MockTokenValidator{}
	router := newAuthRouter(validator)
	validator.On("Validate", "good").Return(&auth.Identity{UserID: "17"}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"17"}`, w.Body.String())
	validator.AssertExpectations(t)
}

func TestRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestContext(zerolog.New(&buf)))
	router.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusNoContent)
	})

	t.Run("generates id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

		id := w.Header().Get(requestIDHeader)
		assert.Len(t, id, 36)
		assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
		assert.Contains(t, buf.String(), "inside handler")
	})

	t.Run("keeps caller id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(requestIDHeader, "scan-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "scan-123", w.Header().Get(requestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"scan-123"`)
		assert.Contains(t, buf.String(), `"status":204`)
	})
}
