package middleware

import (
	"animeRecommender/pkg/logger"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders errors that escape a handler as {"message": ...}.
// Only echo.HTTPError messages are passed through; anything else becomes
// a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if m, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err, "method", c.Request().Method, "path", c.Request().URL.Path)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Message: msg})
	}
	if err != nil {
		logger.Error("Failed to write error response", err)
	}
}
