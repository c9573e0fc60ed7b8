package model

// Entity is anything the client caches by its server-assigned id.
type Entity interface {
	EntityID() int64
}

// Identity is what screens need to know about the signed-in user.
type Identity struct {
	UserId   int64
	UserName string
	IsAdmin  bool
}

func (identity Identity) SignedIn() bool {
	return identity.UserId != 0
}
