package http

import (
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotificationController struct {
	Store *StubStore
	Log   *zap.Logger
}

func NewNotificationController(store *StubStore, zap *zap.Logger) *NotificationController {
	return &NotificationController{
		Store: store,
		Log:   zap,
	}
}

func (controller *NotificationController) GetMyNotifications(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.Notifications(requestUserId(ctx)))
}

func (controller *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	id, err := queryInt64(ctx, "id")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.Store.MarkAsRead(id)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *NotificationController) ClearAll(ctx *fiber.Ctx) error {
	controller.Store.ClearNotifications(requestUserId(ctx))

	return util.SendSuccessResponseNoData(ctx)
}
