package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/pagination"
)

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Subreddit *SubredditHandler
	Post      *PostHandler
	Comment   *CommentHandler
	DB        *DBHandler
}

// New creates a unified handler with all sub-handlers. The database
// handle is not passed here: handlers read the per-request transaction
// from the context.
func New(issuer *auth.TokenIssuer, refresh *auth.RefreshStore) *Handler {
	return &Handler{
		Auth:      &AuthHandler{issuer: issuer, refresh: refresh},
		User:      &UserHandler{},
		Subreddit: &SubredditHandler{},
		Post:      &PostHandler{},
		Comment:   &CommentHandler{},
		DB:        &DBHandler{},
	}
}

// paramInt reads an integer path parameter. false means the request is
// malformed.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseCursor reads the optional score_cursor/id_cursor query pair.
// Omitting either requests the first page; a malformed value is
// reported as ok=false.
func parseCursor(c *gin.Context) (*pagination.Cursor, bool) {
	scoreStr := c.Query("score_cursor")
	idStr := c.Query("id_cursor")
	if scoreStr == "" || idStr == "" {
		return nil, true
	}

	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, false
	}
	return &pagination.Cursor{Score: score, ID: id}, true
}
