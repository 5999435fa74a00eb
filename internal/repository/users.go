// Package repository holds the per-entity storage operations. Every
// function takes the *gorm.DB of the current request's transaction.
// Updates and deletes are scoped by ownership; zero rows affected is
// reported as false and never as an error.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/models"
)

func CreateUser(db *gorm.DB, username, passwordHash, email, displayName, avatar string) (*models.User, error) {
	user := models.User{
		Username:    username,
		Password:    passwordHash,
		Email:       email,
		DisplayName: displayName,
		Avatar:      avatar,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUser(db *gorm.DB, userID int) (*models.User, error) {
	var user models.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the given column updates and returns the updated
// row, or nil when the user does not exist.
func UpdateUser(db *gorm.DB, userID int, updates map[string]any) (*models.User, error) {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return GetUser(db, userID)
}

func DeleteUser(db *gorm.DB, userID int) (bool, error) {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	return result.RowsAffected > 0, result.Error
}

func UsernameExists(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func DisplayNameExists(db *gorm.DB, displayName string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("display_name = ?", displayName).Count(&count).Error
	return count > 0, err
}

// GetUserIDByCredentials returns the id of the user matching the
// credentials, or 0 when the username is unknown or the password
// doesn't verify. The two cases are indistinguishable to the caller.
func GetUserIDByCredentials(db *gorm.DB, username, password string) (int, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if !auth.VerifyPassword(password, user.Password) {
		return 0, nil
	}
	return user.ID, nil
}
