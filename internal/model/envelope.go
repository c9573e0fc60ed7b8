package model

// Envelope wraps every response of the community API.
type Envelope[T any] struct {
	IsSuccess bool    `json:"IsSuccess"`
	Data      T       `json:"Data"`
	Message   *string `json:"Message"`
}

func (envelope Envelope[T]) MessageText() string {
	if envelope.Message == nil {
		return ""
	}

	return *envelope.Message
}

// PageResult is the shape of every paged list endpoint.
type PageResult[T any] struct {
	Items      []T `json:"Items"`
	TotalCount int `json:"TotalCount"`
}

type AdPageResponse struct {
	Items      []AdResponse `json:"Items"`
	TotalCount int          `json:"TotalCount"`
	PageNumber int          `json:"PageNumber"`
	PageSize   int          `json:"PageSize"`
}
