package dto

import authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	Name            string `json:"name" binding:"required"`
	IsBusinessOwner bool   `json:"is_business_owner"`
}

type RegisterTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	User        *authdomain.User `json:"user"`
}
