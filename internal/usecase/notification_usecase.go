package usecase

import (
	"context"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
)

type NotificationUsecase struct {
	NotificationRepository *repository.NotificationRepository
	Cache                  *cache.Session
	Mutator                *Mutator
	Identity               model.Identity
	Log                    *zap.Logger

	notifications *Paginator[model.Notification]
}

func NewNotificationUsecase(notificationRepository *repository.NotificationRepository, cache *cache.Session, mutator *Mutator, identity model.Identity, zap *zap.Logger) *NotificationUsecase {
	return &NotificationUsecase{
		NotificationRepository: notificationRepository,
		Cache:                  cache,
		Mutator:                mutator,
		Identity:               identity,
		Log:                    zap,
		notifications: NewSinglePagePaginator("notifications", cache.Notifications, func(ctx context.Context) ([]model.Notification, error) {
			return notificationRepository.GetMyNotifications(ctx, identity.UserId)
		}, zap),
	}
}

func (usecase *NotificationUsecase) Load(ctx context.Context) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	return usecase.notifications.LoadPage(ctx, 1, true)
}

func (usecase *NotificationUsecase) Items() []model.Notification {
	return usecase.notifications.Items()
}

func (usecase *NotificationUsecase) UnreadCount() int {
	unread := 0
	for _, notification := range usecase.notifications.Items() {
		if !notification.IsRead {
			unread++
		}
	}

	return unread
}

func (usecase *NotificationUsecase) MarkAsRead(ctx context.Context, notificationId int64) error {
	notification, ok := usecase.Cache.Notifications.Get(notificationId)
	if ok && notification.IsRead {
		return nil
	}

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: notificationId,
		Kind:     MutationMarkRead,
		Apply: func() (func(), bool) {
			before, ok := usecase.Cache.Notifications.Patch(notificationId, func(notification *model.Notification) {
				notification.IsRead = true
			})

			return func() {
				usecase.Cache.Notifications.Patch(notificationId, func(notification *model.Notification) {
					notification.IsRead = before.IsRead
				})
			}, ok
		},
		Commit: func(ctx context.Context) error {
			return usecase.NotificationRepository.MarkAsRead(ctx, notificationId)
		},
	})
}

// ClearAll empties the list at once and restores it, in order, when the
// server refuses.
func (usecase *NotificationUsecase) ClearAll(ctx context.Context) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	lists := []PositionalList{usecase.notifications}

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: usecase.Identity.UserId,
		Kind:     MutationClearNotifications,
		Apply: func() (func(), bool) {
			var undos []func()
			for _, id := range usecase.notifications.IDs() {
				if undo, ok := detach(usecase.Cache.Notifications, id, lists); ok {
					undos = append(undos, undo)
				}
			}

			return func() {
				for i := len(undos) - 1; i >= 0; i-- {
					undos[i]()
				}
			}, true
		},
		Commit: func(ctx context.Context) error {
			return usecase.NotificationRepository.ClearAll(ctx, usecase.Identity.UserId)
		},
	})
}

func (usecase *NotificationUsecase) Close() {
	usecase.notifications.Close()
}
