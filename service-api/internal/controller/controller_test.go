package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"movies-api/service-api/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const internalErrorBody = `{"status":500,"message":"Internal Server Error"}`

type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// newTestRouter mounts a controller behind the same error and body handling the app uses
func newTestRouter(prefix string, ctl routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler(), middleware.BodyParser(100*1024))
	ctl.RegisterRoutes(engine.Group(prefix))
	return engine
}

func doRequest(engine *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	engine.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return doRequest(engine, method, path, bytes.NewReader(data), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func TestOptionalPositiveInt(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "", want: 0},
		{value: "3", want: 3},
		{value: "0", wantErr: true},
		{value: "-2", wantErr: true},
		{value: "two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := optionalPositiveInt(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidPaging)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
