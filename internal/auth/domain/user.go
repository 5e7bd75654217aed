package domain

import "time"

// User is the identity record. The device push token lives embedded on the
// user; a user holds at most one token and the token belongs to at most one
// user (last write wins on refresh).
type User struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	Password        string    `json:"-"` // Never return password in JSON
	Name            string    `json:"name"`
	IsAdmin         bool      `json:"is_admin" gorm:"default:false"`
	IsBusinessOwner bool      `json:"is_business_owner" gorm:"default:false"`
	FCMToken        string    `json:"-" gorm:"index"` // Don't expose token in JSON
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasToken reports whether the user currently owns a device token.
func (u *User) HasToken() bool {
	return u.FCMToken != ""
}
