package exception

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	run := func() (err error) {
		defer Recover(zap.NewNop(), &err)
		panic(errors.New("nil map write"))
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil map write")
}

func TestRecoverWithoutPanicKeepsError(t *testing.T) {
	sentinel := errors.New("keep me")
	run := func() (err error) {
		defer Recover(zap.NewNop(), &err)
		return sentinel
	}

	assert.ErrorIs(t, run(), sentinel)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(Recovery(zap.NewNop()))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, sonic.Unmarshal(body, &envelope))
	assert.Equal(t, false, envelope["IsSuccess"])
	assert.NotEmpty(t, envelope["Message"])
}
