package http

import (
	"strings"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatController struct {
	Store *StubStore
	Log   *zap.Logger
}

func NewChatController(store *StubStore, zap *zap.Logger) *ChatController {
	return &ChatController{
		Store: store,
		Log:   zap,
	}
}

func (controller *ChatController) GetChatHistory(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.ChatHistory(requestUserId(ctx)))
}

func (controller *ChatController) SendUserMessage(ctx *fiber.Ctx) error {
	var payload model.SendMessageRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	if strings.TrimSpace(payload.Message) == "" {
		return util.SendBusinessError(ctx, "Message is required to not be empty")
	}

	message := controller.Store.SendChat(requestUserId(ctx), payload.Message)
	return util.SendSuccessResponseWithData(ctx, message)
}

// SearchChatMatches and GetChatContext answer without the envelope.
func (controller *ChatController) SearchChatMatches(ctx *fiber.Ctx) error {
	skip := ctx.QueryInt("skip", 0)
	take := ctx.QueryInt("take", constant.CHAT_SEARCH_TAKE)

	return util.SendRawResponse(ctx, controller.Store.SearchChat(ctx.Query("keyword"), skip, take))
}

func (controller *ChatController) GetChatContext(ctx *fiber.Ctx) error {
	line := ctx.QueryInt("line", 1)
	contextLines := ctx.QueryInt("context", constant.CHAT_CONTEXT_LINES)

	return util.SendRawResponse(ctx, controller.Store.ChatContext(ctx.Query("group"), line, contextLines))
}
