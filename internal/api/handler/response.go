package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint renders, success or failure.
type Response struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{Success: true, Data: data})
}

func respondList(c echo.Context, data any, n int) error {
	return c.JSON(http.StatusOK, Response{Success: true, Count: &n, Data: data})
}

func respondMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Success: true, Message: msg})
}

// Fail renders an error envelope.
func Fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Success: false, Message: msg})
}
