package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope wrapped around every JSON body the API returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess writes a 200 envelope. An empty message becomes "success".
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendCreated writes a 201 envelope, used by every create route.
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusCreated, message, data)
}

// SendSuccessWithStatus writes a success envelope with an explicit status.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return respond(c, status, true, message, "success", data)
}

// SendError writes a failure envelope. message must be safe to show to clients.
func SendError(c *fiber.Ctx, status int, message string) error {
	return respond(c, status, false, message, "error", nil)
}

func respond(c *fiber.Ctx, status int, ok bool, message, fallback string, data interface{}) error {
	if message == "" {
		message = fallback
	}
	return c.Status(status).JSON(APIResponse{Success: ok, Data: data, Message: message})
}
