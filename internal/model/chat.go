package model

import "time"

type ChatMessage struct {
	Id            int64
	UserId        int64
	Text          string
	FromSupport   bool
	CreatedAt     time.Time
	IsPlaceholder bool
}

func (message ChatMessage) EntityID() int64 {
	return message.Id
}

type ChatMessageResponse struct {
	Id           *int64 `json:"Id,omitempty"`
	Message      string `json:"Message"`
	UserId       *int64 `json:"UserId,omitempty"`
	IsFromAdmin  *bool  `json:"IsFromAdmin,omitempty"`
	IsAdminReply *bool  `json:"IsAdminReply,omitempty"`
	CreatedOn    string `json:"CreatedOn,omitempty"`
}

func (response ChatMessageResponse) ToChatMessage() ChatMessage {
	message := ChatMessage{
		Text:      response.Message,
		CreatedAt: ParseServerTime(response.CreatedOn),
	}

	if response.Id != nil {
		message.Id = *response.Id
	}
	if response.UserId != nil {
		message.UserId = *response.UserId
	}

	// IsAdminReply wins; IsFromAdmin is the older flag
	switch {
	case response.IsAdminReply != nil:
		message.FromSupport = *response.IsAdminReply
	case response.IsFromAdmin != nil:
		message.FromSupport = *response.IsFromAdmin
	}

	return message
}

type SendMessageRequest struct {
	Message string `json:"Message" validate:"required,max=2000"`
}

// ChatSearchResult and ChatContext come back without the envelope.
type ChatSearchResult struct {
	Group       string `json:"group"`
	Line        int    `json:"line"`
	Text        string `json:"text"`
	FullMessage string `json:"fullMessage"`
}

type ChatContext struct {
	Group   string   `json:"group"`
	Line    int      `json:"line"`
	Snippet []string `json:"snippet"`
}
