package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"movies-api/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errInvalidPaging = errors.New("page and limit must be positive integers")

// validation errors are reported with the json field names
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
}

// notBlank rejects strings made only of whitespace
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// respondError writes the standard error body
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.NewErrorResponse(status, message))
}

// fail hands an unexpected error to the terminal error handler
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// parseID reads a uuid path parameter, answering 400 when it is malformed
func parseID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s ID", what))
		return uuid.Nil, false
	}
	return id, true
}

// bindRequest binds a JSON or form body into req and answers 400 on failure
func bindRequest(c *gin.Context, req interface{}) bool {
	err := c.ShouldBind(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Errors:  fieldErrors(validationErrs),
		})
		return false
	}

	respondError(c, http.StatusBadRequest, "invalid request data")
	return false
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "notblank":
			out[field] = "must not be blank"
		case "max":
			out[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "gte":
			out[field] = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
		case "lte":
			out[field] = fmt.Sprintf("must be less than or equal to %s", fe.Param())
		case "datetime":
			out[field] = "must be a date formatted as YYYY-MM-DD"
		case "uuid":
			out[field] = "must be a valid UUID"
		default:
			out[field] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return out
}

// pageParams reads the page and limit query parameters; zero means default
func pageParams(c *gin.Context) (int, int, error) {
	page, err := optionalPositiveInt(c.Query("page"))
	if err != nil {
		return 0, 0, err
	}
	limit, err := optionalPositiveInt(c.Query("limit"))
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func optionalPositiveInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, errInvalidPaging
	}
	return n, nil
}
