package middleware

import (
	"bitwise74/task-api/pkg/security"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	userID string
	err    error
}

func (f fakeVerifier) Verify(string) (string, error) {
	return f.userID, f.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.Use(mw...)
	r.Any("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		verifier   TokenVerifier
		wantStatus int
		wantError  string
		wantUser   string
	}{
		{
			name:       "missing token",
			verifier:   fakeVerifier{userID: "u1"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token, permission denied",
		},
		{
			name:       "invalid token",
			token:      "bad",
			verifier:   fakeVerifier{err: errors.New("invalid token")},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token is not valid",
		},
		{
			name:       "valid token",
			token:      "good",
			verifier:   fakeVerifier{userID: "u1"},
			wantStatus: http.StatusOK,
			wantUser:   "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(NewJWTMiddleware(tt.verifier))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			body := decode(t, w)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				assert.NotEmpty(t, body["requestID"])
			}
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, body["userID"])
			}
		})
	}
}

func TestJWTMiddleware_RealTokens(t *testing.T) {
	tokens := security.NewTokenService("test-secret", security.TokenTTL)
	r := newEngine(NewJWTMiddleware(tokens))

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TokenHeader, tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-a", decode(t, w)["userID"])

	// Flip one character of the signature
	tampered := tok[:len(tok)-2] + string(rune('A'+(tok[len(tok)-2]-'A'+1)%26)) + tok[len(tok)-1:]

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TokenHeader, tampered)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Len(t, w.Header().Get(RequestIDHeader), 10)
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimiter(8))
	r.POST("/test", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("this is way too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Unknown length still gets cut off while reading
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("this is way too large"))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := newEngine(RateLimiterMiddleware(t.Context(), RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             2,
		CleanupInterval:   time.Hour,
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterMiddleware_Disabled(t *testing.T) {
	r := newEngine(RateLimiterMiddleware(t.Context(), RateLimiterConfig{}))

	for range 20 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_CleanupStopsWithContext(t *testing.T) {
	r := &rateLimiter{
		visitors: make(map[string]*visitor),
		cfg: RateLimiterConfig{
			RequestsPerSecond: 1,
			Burst:             1,
			CleanupInterval:   time.Millisecond,
			TTL:               time.Minute,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		r.cleanup(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup kept running after its context was cancelled")
	}
}

func TestRateLimiter_Evict(t *testing.T) {
	r := &rateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, TTL: time.Minute},
	}

	r.get("10.0.0.1")
	r.get("10.0.0.2")
	r.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Minute)

	r.evict(time.Now())

	assert.NotContains(t, r.visitors, "10.0.0.1")
	assert.Contains(t, r.visitors, "10.0.0.2")
}

func TestTurnstileMiddleware(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)

		ok := body["secret"] == "ts-secret" && body["response"] == "human"
		json.NewEncoder(w).Encode(turnstileResponse{Success: ok})
	}))
	defer srv.Close()

	r := newEngine(NewTurnstileMiddleware(TurnstileConfig{
		Enabled:   true,
		Secret:    "ts-secret",
		VerifyURL: srv.URL,
	}))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "no token", token: "", status: http.StatusBadRequest},
		{name: "bot", token: "robot", status: http.StatusUnauthorized},
		{name: "human", token: "human", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.token != "" {
				req.Header.Set(TurnstileHeader, tt.token)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestTurnstileMiddleware_Disabled(t *testing.T) {
	r := newEngine(NewTurnstileMiddleware(TurnstileConfig{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTurnstileMiddleware_BadVerifyURL(t *testing.T) {
	r := newEngine(NewTurnstileMiddleware(TurnstileConfig{
		Enabled:   true,
		Secret:    "ts-secret",
		VerifyURL: "://not-a-url",
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set(TurnstileHeader, "human")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewTurnstileRequest(t *testing.T) {
	req, err := newTurnstileRequest(context.Background(), "http://verify.test", turnstileRequest{
		Secret:   "s",
		Response: "r",
		RemoteIP: "10.0.0.1",
	})
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.NewDecoder(req.Body).Decode(&body))

	assert.Equal(t, map[string]string{"secret": "s", "response": "r", "remoteip": "10.0.0.1"}, body)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}
