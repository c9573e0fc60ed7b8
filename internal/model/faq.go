package model

type Faq struct {
	Id        int64  `json:"Id"`
	FaqType   int    `json:"FaqType"`
	Question  string `json:"Question"`
	Answer    string `json:"Answer"`
	IsActive  *bool  `json:"IsActive"`
	IsDeleted *bool  `json:"IsDeleted"`
}

// Visible treats a missing IsActive as active and a missing IsDeleted as
// not deleted.
func (faq Faq) Visible() bool {
	if faq.IsActive != nil && !*faq.IsActive {
		return false
	}

	return faq.IsDeleted == nil || !*faq.IsDeleted
}
