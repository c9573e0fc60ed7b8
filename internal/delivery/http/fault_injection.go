package http

import (
	"github.com/ferdian3456/communityclient/internal/constant"
	tracemiddleware "github.com/ferdian3456/communityclient/internal/middleware"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FaultInjection counts every call per path, holds blocked paths and
// answers with any failure queued through FailNext.
func (store *StubStore) FaultInjection() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		path := ctx.Path()

		mode, failed := store.intercept(path)
		if !failed {
			return ctx.Next()
		}

		tracemiddleware.GetLoggerFromContext(ctx).Debug("injecting failure", zap.String("path", path), zap.Int("mode", int(mode)))

		switch mode {
		case FailBusiness:
			return util.SendBusinessError(ctx, InjectedFailureMessage)
		default:
			return ctx.Status(fiber.StatusInternalServerError).SendString(constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE)
		}
	}
}
