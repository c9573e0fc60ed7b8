package model

import (
	"strings"
	"time"
)

type Role struct {
	RoleId   *int64 `json:"RoleId,omitempty"`
	RoleName string `json:"RoleName"`
}

type RoleMapping struct {
	RoleId *int64 `json:"RoleId,omitempty"`
	Role   *Role  `json:"Role,omitempty"`
}

type UserData struct {
	Id           int64         `json:"Id"`
	Name         string        `json:"Name"`
	Email        string        `json:"Email"`
	Mobile       string        `json:"Mobile,omitempty"`
	ProfileImage *string       `json:"ProfileImage"`
	CreatedOn    string        `json:"CreatedOn,omitempty"`
	IsActive     *bool         `json:"IsActive,omitempty"`
	RoleMappings []RoleMapping `json:"RoleMappings,omitempty"`
}

// HasRole reports whether any role mapping names roleName or carries roleId.
func (user UserData) HasRole(roleName string, roleId int64) bool {
	for _, mapping := range user.RoleMappings {
		if mapping.RoleId != nil && *mapping.RoleId == roleId {
			return true
		}

		if mapping.Role == nil {
			continue
		}

		if strings.EqualFold(mapping.Role.RoleName, roleName) {
			return true
		}

		if mapping.Role.RoleId != nil && *mapping.Role.RoleId == roleId {
			return true
		}
	}

	return false
}

type LoginRequest struct {
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required,min=5,max=64"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateAccountRequest struct {
	Id       int64  `json:"Id"`
	Name     string `json:"Name" validate:"required,max=100"`
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required,min=5,max=64"`
	Mobile   string `json:"Mobile,omitempty" validate:"omitempty,numeric,max=20"`
}

type CreateAccountResponse struct {
	Id int64 `json:"id"`
}

type UpdateAccountRequest struct {
	Id       int64  `json:"Id" validate:"gt=0"`
	Name     string `json:"Name" validate:"required,max=100"`
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password,omitempty" validate:"omitempty,min=5,max=64"`
	Mobile   string `json:"Mobile,omitempty" validate:"omitempty,numeric,max=20"`
}

// Session is what survives a restart of the client.
type Session struct {
	Token     string    `json:"token"`
	User      UserData  `json:"user"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func (session Session) Identity() Identity {
	return Identity{
		UserId:   session.User.Id,
		UserName: session.User.Name,
		IsAdmin:  session.IsAdmin,
	}
}
