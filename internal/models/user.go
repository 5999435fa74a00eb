package models

import "time"

type User struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"size:256;not null" json:"-"` // argon2id hash
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string    `gorm:"size:25;uniqueIndex;not null" json:"display_name"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,max=25"`
	Password    string `json:"password" binding:"required,max=25"`
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name" binding:"required,max=25"`
	Avatar      string `json:"avatar"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Password    *string `json:"password,omitempty" binding:"omitempty,max=25"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=25"`
	Avatar      *string `json:"avatar,omitempty"`
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Exp   int64  `json:"exp"`
}

type AuthResponse struct {
	AccessToken  TokenResponse `json:"access_token"`
	RefreshToken TokenResponse `json:"refresh_token"`
}
