package response

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform success payload shape.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a success envelope with data only.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with a message and optional data.
func Message(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a success envelope carrying a collection and its count.
func List(c echo.Context, status int, count int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Count: &count, Data: data})
}
