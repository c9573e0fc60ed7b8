package model

type PostCategory struct {
	Id        int64  `json:"Id"`
	Title     string `json:"Title"`
	IsActive  bool   `json:"IsActive"`
	IsDeleted bool   `json:"IsDeleted"`
}

func (category PostCategory) Visible() bool {
	return category.IsActive && !category.IsDeleted
}
