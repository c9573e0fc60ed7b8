package model

import "time"

type Ad struct {
	Id          int64
	Title       string
	Description string
	ImageUrl    string
	CreatedAt   time.Time
	IsActive    bool
}

func (ad Ad) EntityID() int64 {
	return ad.Id
}

func (ad Ad) HasImage() bool {
	return ad.ImageUrl != ""
}

type AdResponse struct {
	Id          int64  `json:"Id"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	ImageUrl    string `json:"ImageUrl"`
	CreatedOn   string `json:"CreatedOn"`
	IsActive    *bool  `json:"IsActive"`
}

func (response AdResponse) ToAd() Ad {
	return Ad{
		Id:          response.Id,
		Title:       response.Title,
		Description: response.Description,
		ImageUrl:    response.ImageUrl,
		CreatedAt:   ParseServerTime(response.CreatedOn),
		IsActive:    response.IsActive == nil || *response.IsActive,
	}
}
