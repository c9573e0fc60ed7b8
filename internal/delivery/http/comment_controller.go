package http

import (
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CommentController struct {
	Store    *StubStore
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewCommentController(store *StubStore, validate *validator.Validate, zap *zap.Logger) *CommentController {
	return &CommentController{
		Store:    store,
		Validate: validate,
		Log:      zap,
	}
}

func (controller *CommentController) GetAllCommentOnPost(ctx *fiber.Ctx) error {
	postId, err := queryInt64(ctx, "postId")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	return util.SendSuccessResponseWithData(ctx, controller.Store.Comments(postId))
}

func (controller *CommentController) AddOrUpdateComment(ctx *fiber.Ctx) error {
	var payload model.CommentRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	err = util.ValidateStruct(controller.Validate, payload)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	userId, _ := ctx.Locals("userId").(int64)

	comment, err := controller.Store.SaveComment(payload, userId)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, comment)
}

func (controller *CommentController) DeleteComment(ctx *fiber.Ctx) error {
	commentId, err := queryInt64(ctx, "commentId")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	userId, _ := ctx.Locals("userId").(int64)

	err = controller.Store.DeleteComment(commentId, userId)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
