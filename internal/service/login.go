package service

import (
	"context"
)

// LoginUser authenticates a user by email and password.
type LoginUser struct {
	auth *AuthService
}

// NewLoginUser constructs a LoginUser use case.
func NewLoginUser(auth *AuthService) *LoginUser {
	if auth == nil {
		panic("AuthService is required")
	}
	return &LoginUser{auth: auth}
}

// Execute logs the user in. Empty credentials fail validation before the gateway is called.
func (uc *LoginUser) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	return uc.auth.Login(ctx, email, password)
}
