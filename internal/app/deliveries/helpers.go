package deliveries

import (
	"bytes"
	"encoding/json"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid " + name + " format")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}
	return nil
}

// parseGPS accepts an absent or null gps value, otherwise only a JSON object.
func parseGPS(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, errors.NewBadRequestError("gps must be an object")
	}
	return trimmed, nil
}
