package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>movies</h1>"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Static(dir))
	engine.GET("/api/movies", func(c *gin.Context) {
		c.String(http.StatusOK, "router")
	})
	engine.POST("/css/site.css", func(c *gin.Context) {
		c.String(http.StatusOK, "post")
	})
	engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "fallthrough")
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "root serves index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "<h1>movies</h1>"},
		{name: "nested asset", method: http.MethodGet, path: "/css/site.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "router path passes through", method: http.MethodGet, path: "/api/movies", wantStatus: http.StatusOK, wantBody: "router"},
		{name: "post is never static", method: http.MethodPost, path: "/css/site.css", wantStatus: http.StatusOK, wantBody: "post"},
		{name: "missing file", method: http.MethodGet, path: "/missing.js", wantStatus: http.StatusNotFound, wantBody: "fallthrough"},
		{name: "directory without index", method: http.MethodGet, path: "/empty/", wantStatus: http.StatusNotFound, wantBody: "fallthrough"},
		{name: "traversal stays inside dir", method: http.MethodGet, path: "/../../etc/passwd", wantStatus: http.StatusNotFound, wantBody: "fallthrough"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)

			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
