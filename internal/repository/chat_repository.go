package repository

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/model"
)

type ChatRepository struct {
	Log *zap.Logger
	API *APIClient
}

func NewChatRepository(zap *zap.Logger, api *APIClient) *ChatRepository {
	return &ChatRepository{
		Log: zap,
		API: api,
	}
}

func (repository *ChatRepository) GetChatHistory(ctx context.Context, userId int64) ([]model.ChatMessage, error) {
	responses, err := callEnvelope[[]model.ChatMessageResponse](ctx, repository.API, apiRequest{
		op:     "chat.history",
		method: fiber.MethodGet,
		path:   "/Chats/GetChatHistory",
		query:  queryOf("userId", itoa(userId)),
	})
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatMessage, 0, len(responses))
	for _, response := range responses {
		messages = append(messages, response.ToChatMessage())
	}

	return messages, nil
}

// SendUserMessage returns the stored message, or nil when the server
// confirmed without echoing it.
func (repository *ChatRepository) SendUserMessage(ctx context.Context, userId int64, text string) (*model.ChatMessage, error) {
	response, err := callEnvelope[*model.ChatMessageResponse](ctx, repository.API, apiRequest{
		op:     "chat.send",
		method: fiber.MethodPost,
		path:   "/Chats/SendUserMessage",
		query:  queryOf("userId", itoa(userId)),
		body:   model.SendMessageRequest{Message: text},
	})
	if err != nil || response == nil {
		return nil, err
	}

	message := response.ToChatMessage()
	return &message, nil
}

func (repository *ChatRepository) SearchChatMatches(ctx context.Context, keyword string, skip int, take int) ([]model.ChatSearchResult, error) {
	return callBare[[]model.ChatSearchResult](ctx, repository.API, apiRequest{
		op:     "chat.search",
		method: fiber.MethodGet,
		path:   "/Chat/SearchChatMatches",
		query:  queryOf("keyword", keyword, "skip", strconv.Itoa(skip), "take", strconv.Itoa(take)),
	})
}

func (repository *ChatRepository) GetChatContext(ctx context.Context, group string, line int, contextLines int) (model.ChatContext, error) {
	return callBare[model.ChatContext](ctx, repository.API, apiRequest{
		op:     "chat.context",
		method: fiber.MethodGet,
		path:   "/Chat/GetChatContext",
		query:  queryOf("group", group, "line", strconv.Itoa(line), "context", strconv.Itoa(contextLines)),
	})
}
