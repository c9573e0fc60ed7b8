package exception

import (
	"fmt"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Recovery turns a panicking stub handler into the envelope error response.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				errMsg := panicMessage(r)

				log.Error("panic occurred and recovered", zap.String("error", errMsg), zap.String("path", c.Path()))

				message := constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"IsSuccess": false,
					"Data":      nil,
					"Message":   message,
				})
			}
		}()

		return c.Next()
	}
}

// Recover is deferred around request completions and callbacks run by the
// client core. A panic is logged and, when errp is given, turned into an
// error so the caller can revert its optimistic state.
func Recover(log *zap.Logger, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	errMsg := panicMessage(r)
	log.Error("panic occurred and recovered", zap.String("error", errMsg))

	if errp != nil {
		*errp = fmt.Errorf("recovered panic: %s", errMsg)
	}
}
