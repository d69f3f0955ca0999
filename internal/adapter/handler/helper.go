package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sehatsaathi/voicecare/errors"
)

// Response shapes. Failure bodies always carry an `error` string; raw detail
// is included only in development mode.
type errs struct {
	Code  interface{} `json:"code,omitempty"`
	Error string      `json:"error"`
	Info  string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// CallerID reads the upstream-authenticated identity. Authentication itself
// happens before this service.
func CallerID(c echo.Context) string {
	return c.Request().Header.Get("X-User-ID")
}

// HandleSuccess writes a JSON success response with the given status
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging. includeDetail exposes
// the wrapped cause and is only set in development.
func HandleError(logger *zap.Logger, c echo.Context, err error, includeDetail bool) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		body := errs{
			Code:  appErr.Code,
			Error: appErr.Message,
		}
		if includeDetail && appErr.Raw != nil {
			body.Info = appErr.Raw.Error()
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:  errors.ErrorCode_INTERNAL,
		Error: "Internal server error",
	}
	if includeDetail {
		body.Info = err.Error()
	}

	return c.JSON(http.StatusInternalServerError, body)
}
