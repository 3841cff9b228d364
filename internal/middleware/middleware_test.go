package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/testhelpers"
	"github.com/pageza/culinary-assistant/backend/internal/types"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func whoAmI(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String())
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(mockValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Username: "cook"}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("signature is invalid"))

	r := gin.New()
	r.GET("/", AuthMiddleware(validator), whoAmI)

	w := serve(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	for _, header := range []string{"", "Bearer bad", "Token good", "Bearer"} {
		w := serve(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := new(mockValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("expired"))

	r := gin.New()
	r.GET("/", OptionalAuth(validator), whoAmI)

	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = serve(r, "Bearer good")
	assert.Equal(t, userID.String(), w.Body.String())

	w = serve(r, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(config.LogConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	r := gin.New()
	r.Use(requestid.New(), RequestLogger(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"path":"/ok"`)
	assert.Contains(t, buf.String(), `"status":200`)

	buf.Reset()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "recovered from panic")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.GET("/", NewSearchRateLimiter(client, 1, logger.Nop()).RateLimitMiddleware(), whoAmI)

	for i := 0; i < 3; i++ {
		w := serve(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	client := testhelpers.SetupRedis(t)

	limiter := NewSearchRateLimiter(client, 2, logger.Nop())
	// Pin the clock mid-window so the test cannot straddle a boundary.
	fixed := time.Now().Truncate(time.Minute).Add(30 * time.Second)
	limiter.now = func() time.Time { return fixed }

	r := gin.New()
	r.GET("/", limiter.RateLimitMiddleware(), whoAmI)

	for i := 0; i < 2; i++ {
		w := serve(r, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}
