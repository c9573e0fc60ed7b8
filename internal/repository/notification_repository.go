package repository

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/model"
)

type NotificationRepository struct {
	Log *zap.Logger
	API *APIClient
}

func NewNotificationRepository(zap *zap.Logger, api *APIClient) *NotificationRepository {
	return &NotificationRepository{
		Log: zap,
		API: api,
	}
}

func (repository *NotificationRepository) GetMyNotifications(ctx context.Context, userId int64) ([]model.Notification, error) {
	responses, err := callEnvelope[[]model.NotificationResponse](ctx, repository.API, apiRequest{
		op:     "notification.list",
		method: fiber.MethodGet,
		path:   "/Notification/GetMyNotifications",
		query:  queryOf("userId", itoa(userId)),
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]model.Notification, 0, len(responses))
	for _, response := range responses {
		notifications = append(notifications, response.ToNotification())
	}

	return notifications, nil
}

func (repository *NotificationRepository) MarkAsRead(ctx context.Context, id int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "notification.mark_read",
		method: fiber.MethodPost,
		path:   "/Notification/MarkAsRead",
		query:  queryOf("id", itoa(id)),
	})

	return err
}

func (repository *NotificationRepository) ClearAll(ctx context.Context, userId int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "notification.clear_all",
		method: fiber.MethodPost,
		path:   "/Notification/ClearAll",
		query:  queryOf("userId", itoa(userId)),
	})

	return err
}
