package http

import (
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdController struct {
	Store *StubStore
	Log   *zap.Logger
}

func NewAdController(store *StubStore, zap *zap.Logger) *AdController {
	return &AdController{
		Store: store,
		Log:   zap,
	}
}

func (controller *AdController) GetAds(ctx *fiber.Ctx) error {
	pageNumber := ctx.QueryInt("pageNumber", 1)
	pageSize := ctx.QueryInt("pageSize", constant.DEFAULT_PAGE_SIZE)

	return util.SendSuccessResponseWithData(ctx, controller.Store.AdPage(pageNumber, pageSize))
}

func (controller *AdController) Delete(ctx *fiber.Ctx) error {
	if !isAdmin(ctx) {
		return sendStoreError(ctx, controller.Log, errAdminOnly)
	}

	id, err := queryInt64(ctx, "id")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.Store.DeleteAd(id)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
