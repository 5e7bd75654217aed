package repository

import (
	"errors"
	"time"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository is the token store: user identity records carrying the
// device push token and role flags.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByEmail(email string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// ListTokenHolders returns users holding a non-empty token, optionally
	// filtered by the business-owner flag.
	ListTokenHolders(isBusinessOwner *bool) ([]authdomain.User, error)
	// SaveToken assigns a token to a user, stealing it from any previous
	// owner so a token resolves to exactly one user.
	SaveToken(userID, token string) error
	// ClearToken removes the user's token if it matches the given value.
	ClearToken(userID, token string) error
	// ClearTokens clears the given token values off their owning users in a
	// single committed write and reports how many rows changed.
	ClearTokens(tokens []string) (int64, error)
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) ListTokenHolders(isBusinessOwner *bool) ([]authdomain.User, error) {
	query := r.db.Where("fcm_token <> ''")
	if isBusinessOwner != nil {
		query = query.Where("is_business_owner = ?", *isBusinessOwner)
	}
	var users []authdomain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) SaveToken(userID, token string) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Detach the token from any previous owner first; a token belongs
		// to exactly one user.
		if err := tx.Model(&authdomain.User{}).
			Where("fcm_token = ? AND id <> ?", token, userID).
			Updates(map[string]interface{}{"fcm_token": "", "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&authdomain.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"fcm_token": token, "updated_at": now}).Error
	})
}

func (r *userRepository) ClearToken(userID, token string) error {
	return r.db.Model(&authdomain.User{}).
		Where("id = ? AND fcm_token = ?", userID, token).
		Updates(map[string]interface{}{"fcm_token": "", "updated_at": time.Now()}).Error
}

func (r *userRepository) ClearTokens(tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	res := r.db.Model(&authdomain.User{}).
		Where("fcm_token IN ?", tokens).
		Updates(map[string]interface{}{"fcm_token": "", "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
