package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pendulab/pendulum-backend/internal/apierr"
	"github.com/pendulab/pendulum-backend/internal/repos"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFailure maps a status-tagged service error onto the wire. Client
// errors carry their message through; 5xx responses get a generic message
// because the wrapped store error can hold connection detail, and the
// service call sites already log it.
func RespondFailure(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	code := apierr.CodeOf(err)
	if status >= http.StatusInternalServerError {
		if code == "" {
			code = "internal"
		}
		RespondError(c, status, code, errors.New(genericMessage(status)))
		return
	}
	RespondError(c, status, code, err)
}

func genericMessage(status int) string {
	if status == http.StatusBadGateway {
		return "Store unavailable"
	}
	return "Something happened"
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func parseListParams(c *gin.Context) repos.ListParams {
	params := repos.ListParams{Sort: c.Query("sort")}
	if raw := c.Query("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			params.Skip = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			params.Limit = v
		}
	}
	return params
}
