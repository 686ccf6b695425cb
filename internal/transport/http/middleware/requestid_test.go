package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/tinyapp/internal/requestid"
	"github.com/ErlanBelekov/tinyapp/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func TestRequestID_PropagatesToContextAndHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestid.FromContext(c.Request.Context()))
	})

	const id = "0b7e5b52-3a63-4c1e-9a3f-2f4b9c1d8e7a"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	r.ServeHTTP(w, req)

	if w.Body.String() != id || w.Header().Get("X-Request-ID") != id {
		t.Errorf("body %q header %q, want %q", w.Body.String(), w.Header().Get("X-Request-ID"), id)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.String() == "" || w.Body.String() != w.Header().Get("X-Request-ID") {
		t.Errorf("generated id mismatch: body %q header %q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}
}

func TestSecurity_HSTSOnlyWhenEnabled(t *testing.T) {
	for _, hsts := range []bool{false, true} {
		r := gin.New()
		r.Use(middleware.Security(hsts))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Header().Get("X-Frame-Options") != "DENY" {
			t.Errorf("hsts=%v: missing X-Frame-Options", hsts)
		}
		if got := w.Header().Get("Strict-Transport-Security") != ""; got != hsts {
			t.Errorf("hsts=%v: HSTS header present = %v", hsts, got)
		}
	}
}
