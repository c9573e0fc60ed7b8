package http

import (
	"errors"
	"strconv"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// sendStoreError reports rejections the way the API does, as a 200 with
// IsSuccess false. Anything else is a 500.
func sendStoreError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return util.SendBusinessError(ctx, validationErr.Message)
	}

	return util.SendErrorResponseInternalServer(ctx, log, err)
}

func queryInt64(ctx *fiber.Ctx, name string) (int64, error) {
	value, err := strconv.ParseInt(ctx.Query(name), 10, 64)
	if err != nil || value < 0 {
		return 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid " + name,
			Param:   name,
		}
	}

	return value, nil
}

// requestUserId prefers the userId query parameter and falls back to the
// token's subject.
func requestUserId(ctx *fiber.Ctx) int64 {
	if ctx.Query("userId") != "" {
		userId, err := queryInt64(ctx, "userId")
		if err == nil && userId > 0 {
			return userId
		}
	}

	userId, _ := ctx.Locals("userId").(int64)
	return userId
}

func isAdmin(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals("role").(string)
	return role == constant.ADMIN_ROLE_NAME
}

var errAdminOnly = &model.ValidationError{
	Code:    constant.ERR_FORBIDDEN_CODE,
	Message: "Only admins can do this",
	Param:   "role",
}
