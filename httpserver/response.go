package httpserver

import (
	"github.com/labstack/echo/v4"
)

const defaultErrorMessage = "Internal Server Error"

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON pins the content type so every response, success or failure,
// carries the same header.
func writeJSON(c echo.Context, status int, body interface{}) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return c.JSON(status, body)
}

func writeMessage(c echo.Context, status int, message string) error {
	return writeJSON(c, status, MessageResponse{Message: message})
}

func writeError(c echo.Context, status int, message string) error {
	if message == "" {
		message = defaultErrorMessage
	}
	return writeJSON(c, status, ErrorResponse{Error: message})
}
