package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/repository"
)

type UserHandler struct{}

// GetMe returns the current authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := repository.GetUser(middleware.DB(c), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(apperror.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the current user's profile. Email and display name
// stay unique; a new password is hashed before it is stored.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var input models.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)
	userID := middleware.CurrentUserID(c)

	if input.Email != nil {
		if exists, err := repository.EmailExists(db, *input.Email); err != nil {
			c.Error(err)
			return
		} else if exists {
			c.Error(apperror.ErrEmailExists)
			return
		}
	}

	if input.DisplayName != nil {
		if exists, err := repository.DisplayNameExists(db, *input.DisplayName); err != nil {
			c.Error(err)
			return
		} else if exists {
			c.Error(apperror.ErrDisplayNameExists)
			return
		}
	}

	updates := map[string]any{}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			c.Error(err)
			return
		}
		updates["password"] = hash
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}

	if len(updates) == 0 {
		h.GetMe(c)
		return
	}

	user, err := repository.UpdateUser(db, userID, updates)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(apperror.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe deletes the current user's account. Posts, comments and
// votes cascade; owning a subreddit blocks the delete.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	deleted, err := repository.DeleteUser(middleware.DB(c), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(apperror.ErrUserNotFound)
		return
	}

	c.Status(http.StatusOK)
}
