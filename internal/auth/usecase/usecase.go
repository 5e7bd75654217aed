package usecase

import (
	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	authdto "github.com/rameshbanalab/ServNest-sub001/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication operations
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	ValidateToken(token string) (*authdomain.User, error)
	RegisterDeviceToken(userID, token string) error
	UnregisterDeviceToken(userID, token string) error
}
