package response

import "github.com/gofiber/fiber/v2"

// Error kinds reported outside the pipeline's own classification
const (
	KindValidation = "input_error"
	KindNotFound   = "not_found"
	KindService    = "service_error"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Message    string      `json:"message"`
	Kind       string      `json:"kind,omitempty"`
	Stage      string      `json:"stage,omitempty"`
	SlideIndex *int        `json:"slideIndex,omitempty"`
	Cause      string      `json:"cause,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

func Error(c *fiber.Ctx, status int, body ErrorBody) error {
	return c.Status(status).JSON(body)
}

func ValidationError(c *fiber.Ctx, message string, details interface{}) error {
	return Error(c, fiber.StatusBadRequest, ErrorBody{Message: message, Kind: KindValidation, Details: details})
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, ErrorBody{Message: message, Kind: KindNotFound})
}

func ServiceError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, ErrorBody{Message: message, Kind: KindService})
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func Accepted(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusAccepted).JSON(data)
}
