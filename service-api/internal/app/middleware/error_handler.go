package middleware

import (
	"fmt"
	"net/http"

	"movies-api/pkg/logger"
	"movies-api/pkg/model"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the terminal error handler. Errors attached to the context
// with c.Error and panics raised further down the chain are logged and turned
// into a generic 500 response. A response that was already written is left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			logger.Errorf(err, "panic recovered on %s %s", c.Request.Method, c.Request.URL.Path)
			writeInternalError(c)
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, ginErr := range c.Errors {
			logger.Errorf(ginErr.Err, "unhandled error on %s %s", c.Request.Method, c.Request.URL.Path)
		}
		writeInternalError(c)
	}
}

func writeInternalError(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.InternalServerError)
}
