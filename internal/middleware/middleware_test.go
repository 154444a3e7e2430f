package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/dto"
)

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantMsg   string
		wantField string
	}{
		{"internal", assertErr{}, http.StatusInternalServerError, "Internal server error", ""},
		{"bad request", apperr.BadRequest("Id is not correct."), http.StatusBadRequest, "Id is not correct.", ""},
		{"validation", apperr.InvalidField("speed"), http.StatusBadRequest, "Ship.speed is not valid.", "speed"},
		{"not found", apperr.NotFound("Ship", 9), http.StatusNotFound, "Ship not found", ""},
		{"wrapped not found", fmt.Errorf("get: %w", apperr.NotFound("Ship", 9)), http.StatusNotFound, "get: Ship not found", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(ErrorHandler)
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tt.wantCode {
				t.Fatalf("code=%d want %d", w.Code, tt.wantCode)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Message != tt.wantMsg || body.Field != tt.wantField {
				t.Fatalf("body=%+v", body)
			}
			if body.ErrorDetails != "" {
				t.Fatalf("details must not leak: %q", body.ErrorDetails)
			}
		})
	}
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusAccepted, "done")
		_ = c.Error(assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusAccepted || w.Body.String() != "done" {
		t.Fatalf("response overwritten: %d %q", w.Code, w.Body.String())
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	var body dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "Internal server error" || body.ErrorDetails != "" {
		t.Fatalf("body=%+v", body)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "at limit", reqs: 3, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
		{name: "disabled", reqs: 50, lim: 0, expect: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last int
			for i := 0; i < tc.reqs; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				last = w.Code
			}
			if last != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last)
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Date(3019, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := &rateLimiter{clients: map[string]*client{}, limit: 1, window: time.Minute, now: func() time.Time { return now }}

	if !rl.allow("10.0.0.1") {
		t.Fatalf("first request denied")
	}
	if rl.allow("10.0.0.1") {
		t.Fatalf("second request in window allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatalf("other clients have their own budget")
	}
	now = now.Add(2 * time.Minute)
	if !rl.allow("10.0.0.1") {
		t.Fatalf("window did not reset")
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("request context has no deadline")
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "http://ui.example", "*"},
		{"listed", []string{"http://ui.example"}, "http://ui.example", "http://ui.example"},
		{"not listed", []string{"http://ui.example"}, "http://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(CORS(tt.origins))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Fatalf("allow-origin=%q want %q", got, tt.want)
			}
		})
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}
