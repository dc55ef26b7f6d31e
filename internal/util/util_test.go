package util

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPDFTextRejectsEmptyInput(t *testing.T) {
	_, err := ExtractPDFText(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText(context.Background(), []byte("definitely not a pdf"), nil)
	assert.Error(t, err)
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestSuccessResponseDefaultsToOK(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessResponse(c, SuccessResponseFormat{Message: "ok", Data: fiber.Map{"a": 1}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]any{"a": float64(1)}, body["data"])
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed",
			Details: []string{"gemini: quota"},
		}, errors.New("root cause"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []any{"gemini: quota"}, body["details"])
	assert.Equal(t, "root cause", body["dev_message"])
}

func TestErrorResponseDefaultsToInternalError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{Message: "oops"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestFormError(t *testing.T) {
	err := NewFormError("validation failed", map[string]string{"email": "email"})
	assert.Equal(t, "form error: validation failed", err.Error())
	assert.Equal(t, "email", err.Errors["email"])
}
