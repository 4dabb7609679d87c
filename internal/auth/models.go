package auth

import "time"

// User is an account row. Exactly one Profile belongs to each User; both are
// created in the same transaction at registration.
type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `json:"-"`
	Role           string    `gorm:"not null;default:'USER'" json:"role"`
	Active         bool      `gorm:"not null;default:false" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Profile  Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile"`
	Sessions []Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session holds only the sha256-derived id, never the raw token. A stolen
// sessions table therefore cannot be replayed as cookies.
type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (User) TableName() string    { return "app_auth.users" }
func (Profile) TableName() string { return "app_auth.profiles" }
func (Session) TableName() string { return "app_auth.sessions" }
