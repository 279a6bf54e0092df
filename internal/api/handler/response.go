package handler

import "github.com/labstack/echo/v4"

// envelope is the canonical response shape:
// {"status":"success|error","message":"...","data":{...}}.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respond writes a success envelope with the given HTTP status.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Status: "success", Message: message, Data: data})
}
