package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyEngine(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandler(), BodyParser(limit))
	engine.POST("/echo", func(c *gin.Context) {
		if c.ContentType() == "application/x-www-form-urlencoded" {
			c.String(http.StatusOK, c.Request.PostForm.Get("title"))
			return
		}
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Data(http.StatusOK, "text/plain", data)
	})
	return engine
}

func TestBodyParser(t *testing.T) {
	engine := newBodyEngine(64)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "valid json is handed on intact",
			contentType: "application/json",
			body:        `{"title":"Heat"}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"title":"Heat"}`,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `[1,2,3]`,
			wantStatus:  http.StatusOK,
			wantBody:    `[1,2,3]`,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"title":`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    internalErrorBody,
		},
		{
			name:        "json over the limit",
			contentType: "application/json",
			body:        `{"overview":"` + strings.Repeat("a", 100) + `"}`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    internalErrorBody,
		},
		{
			name:        "url encoded form",
			contentType: "application/x-www-form-urlencoded",
			body:        "title=The+Thing&adult=false",
			wantStatus:  http.StatusOK,
			wantBody:    "The Thing",
		},
		{
			name:        "form over the limit",
			contentType: "application/x-www-form-urlencoded",
			body:        "title=" + strings.Repeat("b", 100),
			wantStatus:  http.StatusInternalServerError,
			wantBody:    internalErrorBody,
		},
		{
			name:        "other content types are not limited",
			contentType: "text/plain",
			body:        strings.Repeat("c", 100),
			wantStatus:  http.StatusOK,
			wantBody:    strings.Repeat("c", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			engine.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestBodyParser_EmptyBody(t *testing.T) {
	engine := newBodyEngine(64)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
