package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/repository"
)

type AuthHandler struct {
	issuer  *auth.TokenIssuer
	refresh *auth.RefreshStore
}

// tokenPair issues a fresh access + refresh token pair for the user.
func (h *AuthHandler) tokenPair(c *gin.Context, userID int) (*models.AuthResponse, error) {
	accessToken, accessExp, err := h.issuer.Issue(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := h.refresh.Issue(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken:  models.TokenResponse{Token: accessToken, Exp: accessExp},
		RefreshToken: models.TokenResponse{Token: refreshToken, Exp: refreshExp},
	}, nil
}

// registrationConflict picks the uniqueness error matching whichever
// column a racing insert collided on, in the same order SignUp checks
// them.
func registrationConflict(db *gorm.DB, input models.RegisterRequest) error {
	if exists, err := repository.UsernameExists(db, input.Username); err != nil {
		return err
	} else if exists {
		return apperror.ErrUsernameExists
	}
	if exists, err := repository.EmailExists(db, input.Email); err != nil {
		return err
	} else if exists {
		return apperror.ErrEmailExists
	}
	return apperror.ErrDisplayNameExists
}

// SignUp registers a new user and signs them in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	if exists, err := repository.UsernameExists(db, input.Username); err != nil {
		c.Error(err)
		return
	} else if exists {
		c.Error(apperror.ErrUsernameExists)
		return
	}

	if exists, err := repository.EmailExists(db, input.Email); err != nil {
		c.Error(err)
		return
	} else if exists {
		c.Error(apperror.ErrEmailExists)
		return
	}

	if exists, err := repository.DisplayNameExists(db, input.DisplayName); err != nil {
		c.Error(err)
		return
	} else if exists {
		c.Error(apperror.ErrDisplayNameExists)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := repository.CreateUser(db, input.Username, hash, input.Email, input.DisplayName, input.Avatar)
	// A concurrent sign-up can slip past the checks above and trip a
	// unique index at insert time instead.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.Error(registrationConflict(db, input))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	tokens, err := h.tokenPair(c, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

// SignIn exchanges credentials for a token pair.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	userID, err := repository.GetUserIDByCredentials(middleware.DB(c), input.Username, input.Password)
	if err != nil {
		c.Error(err)
		return
	}
	if userID == 0 {
		c.Error(apperror.ErrAuthenticationFailed)
		return
	}

	tokens, err := h.tokenPair(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// SignOut revokes a refresh token. Revoking a token that was never
// issued (or already expired) is an authentication failure.
func (h *AuthHandler) SignOut(c *gin.Context) {
	var input models.TokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	revoked, err := h.refresh.Revoke(c.Request.Context(), input.Token)
	if err != nil {
		c.Error(err)
		return
	}
	if !revoked {
		c.Error(apperror.ErrAuthenticationFailed)
		return
	}

	c.Status(http.StatusOK)
}

// Refresh trades a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input models.TokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	userID, ok, err := h.refresh.Verify(c.Request.Context(), input.Token)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperror.ErrAuthenticationFailed)
		return
	}

	accessToken, exp, err := h.issuer.Issue(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: accessToken, Exp: exp})
}

// ResetStore wipes the refresh-token store. Test support.
func (h *AuthHandler) ResetStore(c *gin.Context) {
	if err := h.refresh.Reset(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
