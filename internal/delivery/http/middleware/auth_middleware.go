package middleware

import (
	"errors"

	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	App    *fiber.App
	Log    *zap.Logger
	Config *koanf.Koanf
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf) *AuthMiddleware {
	return &AuthMiddleware{
		App:    app,
		Log:    zap,
		Config: koanf,
	}
}

// ProtectedRoute stores the token's user id (int64) and role in Locals.
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var validationErr *model.ValidationError

		accessToken := ctx.Get("Authorization")
		userId, role, err := util.ValidateAccessToken(accessToken, middleware.Log, middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)
		ctx.Locals("role", role)

		middleware.Log.Debug("middleware here", zap.Int64("userId", userId), zap.String("role", role))

		return ctx.Next()
	}
}
