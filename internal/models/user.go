package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is an account. PasswordHash always holds a bcrypt hash, never the
// plaintext password.
type User struct {
	ID                         uint       `gorm:"primaryKey" json:"id"`
	Name                       string     `gorm:"size:100;not null" json:"name"`
	Email                      string     `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash               string     `gorm:"size:255;not null" json:"-"`
	Role                       Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Phone                      *string    `gorm:"size:30" json:"phone,omitempty"`
	EmailVerified              bool       `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken          *string    `gorm:"size:255;index" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
	ResetToken                 *string    `gorm:"size:255;index" json:"-"`
	ResetTokenExpiresAt        *time.Time `json:"-"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserShortlist is a user's saved property. The (user, property) pair is unique.
type UserShortlist struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_shortlists_user_property,priority:1" json:"user_id"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_user_shortlists_user_property,priority:2;index" json:"property_id"`
	Property   *Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (UserShortlist) TableName() string {
	return "user_shortlists"
}
