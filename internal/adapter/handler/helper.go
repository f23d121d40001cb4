package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data with the given status and logs the response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging using provided logger.
// Client errors carry only the message; timeouts add details; other server
// errors append the upstream cause so operators can see it.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		if deadline.IsTimeout(err) {
			appErr = errors.ErrUpstreamTimeout("request", err)
		} else {
			appErr = errors.ErrInternal(err)
		}
	}

	if logger != nil {
		log := logger.Error
		if appErr.HTTPCode < http.StatusInternalServerError {
			log = logger.Warn
		}
		log("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Any("details", appErr.Details),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{Error: appErr.Message}
	switch {
	case appErr.Code == errors.ErrorCode_UPSTREAM_TIMEOUT:
		if appErr.Raw != nil {
			body.Details = appErr.Raw.Error()
		} else {
			body.Details = appErr.Details["operation"]
		}
	case appErr.HTTPCode >= http.StatusInternalServerError && appErr.Raw != nil:
		body.Error = appErr.Message + ": " + appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}
