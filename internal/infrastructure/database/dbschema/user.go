package dbschema

import (
	"time"

	"duochat-server/internal/domain/user"
)

// User is the database schema for users.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	PublicID     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string    `gorm:"type:varchar(255);not null;default:''"`
	PasswordHash string    `gorm:"type:varchar(255);not null;default:''"`
	Picture      string    `gorm:"type:text;not null;default:''"`
	Subject      string    `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// NewSchemaUser creates a database schema row from the domain user.
func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Picture:      u.Picture,
		Subject:      u.Subject,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// EtoD converts the database row to the domain user.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Picture:      u.Picture,
		Subject:      u.Subject,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
