package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ErrMalformedJSON is attached to the context when a JSON body does not parse
var ErrMalformedJSON = errors.New("malformed JSON request body")

// BodyParser reads JSON and url-encoded bodies up front, bounded by limit bytes.
// JSON payloads are checked for syntax and put back for the handlers; forms are
// parsed into Request.PostForm. Other content types pass through untouched.
// Failures are handed to the error handler.
func BodyParser(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		if req.Body == nil || req.Body == http.NoBody {
			c.Next()
			return
		}

		switch c.ContentType() {
		case binding.MIMEJSON:
			req.Body = http.MaxBytesReader(c.Writer, req.Body, limit)
			data, err := io.ReadAll(req.Body)
			if err != nil {
				abortWithError(c, fmt.Errorf("failed to read request body: %w", err))
				return
			}
			if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
				abortWithError(c, ErrMalformedJSON)
				return
			}
			req.Body = io.NopCloser(bytes.NewReader(data))

		case binding.MIMEPOSTForm:
			req.Body = http.MaxBytesReader(c.Writer, req.Body, limit)
			err := req.ParseForm()
			if err != nil {
				abortWithError(c, fmt.Errorf("failed to parse form body: %w", err))
				return
			}
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
