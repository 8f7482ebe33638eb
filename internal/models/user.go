// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role identifies the privilege level of a user account.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin dashboard and moderation endpoints.
	RoleAdmin Role = "admin"
)

// User represents a registered account in the Blogify application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	// FollowersCount and FollowingCount are not persisted; computed at query time
	FollowersCount int `gorm:"->;-:migration" json:"followers_count"`
	FollowingCount int `gorm:"->;-:migration" json:"following_count"`
	// PostsCount is not persisted; populated by admin listings
	PostsCount int       `gorm:"->;-:migration" json:"posts_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Posts      []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
