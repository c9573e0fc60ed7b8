package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserId int64  `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
