package model

import "time"

type Notification struct {
	Id        int64
	UserId    int64
	Title     string
	Message   string
	PostId    *int64
	IsRead    bool
	CreatedAt time.Time
}

func (notification Notification) EntityID() int64 {
	return notification.Id
}

type NotificationResponse struct {
	Id        int64  `json:"Id"`
	UserId    int64  `json:"UserId"`
	Title     string `json:"Title"`
	Message   string `json:"Message"`
	PostId    *int64 `json:"PostId"`
	IsRead    bool   `json:"IsRead"`
	CreatedOn string `json:"CreatedOn"`
}

func (response NotificationResponse) ToNotification() Notification {
	return Notification{
		Id:        response.Id,
		UserId:    response.UserId,
		Title:     response.Title,
		Message:   response.Message,
		PostId:    response.PostId,
		IsRead:    response.IsRead,
		CreatedAt: ParseServerTime(response.CreatedOn),
	}
}
