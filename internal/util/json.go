package util

import (
	"github.com/ferdian3456/communityclient/internal/constant"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"IsSuccess": true,
		"Data":      nil,
		"Message":   nil,
	})
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"IsSuccess": true,
		"Data":      data,
		"Message":   nil,
	})
}

// SendRawResponse writes data without the envelope, for the chat search
// endpoints.
func SendRawResponse(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(data)
}

// SendBusinessError answers 200 with IsSuccess false, the way the API
// reports rejected operations.
func SendBusinessError(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"IsSuccess": false,
		"Data":      nil,
		"Message":   message,
	})
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"IsSuccess": false,
		"Data":      nil,
		"Message":   error.Error(),
	})
}

func SendErrorResponseUnauthorized(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"IsSuccess": false,
		"Data":      nil,
		"Message":   error.Error(),
	})
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"IsSuccess": false,
		"Data":      nil,
		"Message":   constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
	})
}
