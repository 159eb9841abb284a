// internal/models/account.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a regular marketplace account. Catalog items owned by a regular
// user are auto-approved but never published to the public catalog.
type User struct {
	BaseModel
	Username        string        `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string        `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string        `json:"-" gorm:"size:255;not null"`
	Status          AccountStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	EmailVerifiedAt *time.Time    `json:"email_verified_at"`
	LastLoginAt     *time.Time    `json:"last_login_at"`
}

// Designer runs one or more stores.
type Designer struct {
	BaseModel
	Username     string        `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string        `json:"-" gorm:"size:255;not null"`
	Biography    string        `json:"biography" gorm:"type:text"`
	IsSponsored  bool          `json:"is_sponsored" gorm:"default:false;index"`
	Status       AccountStatus `json:"status" gorm:"type:varchar(20);default:'active'"`

	// Relationships
	Stores []Store `json:"stores,omitempty" gorm:"foreignKey:DesignerID"`
}

// Organization groups workshops under one sponsor-able profile.
type Organization struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Biography   string `json:"biography" gorm:"type:text"`
	LogoPath    string `json:"logo_path" gorm:"size:512"`
	IsSponsored bool   `json:"is_sponsored" gorm:"default:false;index"`

	// Relationships
	Workshops []Workshop `json:"workshops,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (d *Designer) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hashedPassword)
	return nil
}

func (d *Designer) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password))
}
