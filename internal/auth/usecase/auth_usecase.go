package usecase

import (
	"errors"
	"time"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	authdto "github.com/rameshbanalab/ServNest-sub001/internal/auth/dto"
	"github.com/rameshbanalab/ServNest-sub001/internal/auth/repository"
	"github.com/rameshbanalab/ServNest-sub001/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("invalid email or password")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, errors.New("invalid email or password")
	}

	return u.generateToken(user)
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:           req.Email,
		Password:        hashedPassword,
		Name:            req.Name,
		IsBusinessOwner: req.IsBusinessOwner,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return u.generateToken(user)
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, errors.New("invalid token subject")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (u *authUsecase) RegisterDeviceToken(userID, token string) error {
	return u.userRepo.SaveToken(userID, token)
}

func (u *authUsecase) UnregisterDeviceToken(userID, token string) error {
	return u.userRepo.ClearToken(userID, token)
}

func (u *authUsecase) generateToken(user *authdomain.User) (*authdto.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"admin": user.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(u.config.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		User:        user,
	}, nil
}
