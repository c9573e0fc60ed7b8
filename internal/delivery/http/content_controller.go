package http

import (
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContentController struct {
	Store *StubStore
	Log   *zap.Logger
}

func NewContentController(store *StubStore, zap *zap.Logger) *ContentController {
	return &ContentController{
		Store: store,
		Log:   zap,
	}
}

func (controller *ContentController) GetCategories(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.Categories())
}

func (controller *ContentController) GetFaqs(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.Faqs())
}
