package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/repository"
)

type SubredditHandler struct{}

// Create creates a subreddit owned by the current user.
func (h *SubredditHandler) Create(c *gin.Context) {
	var input models.CreateSubredditRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	if exists, err := repository.SubredditNameExists(db, input.Name); err != nil {
		c.Error(err)
		return
	} else if exists {
		c.Error(apperror.ErrSubredditNameExists)
		return
	}

	subredditID, err := repository.CreateSubreddit(db, input.Name, middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	subreddit, err := repository.GetSubreddit(db, subredditID)
	if err != nil {
		c.Error(err)
		return
	}
	if subreddit == nil {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.JSON(http.StatusCreated, subreddit)
}

// List returns one page of subreddits ranked by name similarity to the
// required search_query parameter.
func (h *SubredditHandler) List(c *gin.Context) {
	searchQuery := c.Query("search_query")
	if searchQuery == "" {
		c.Error(apperror.ErrValidation)
		return
	}

	cur, ok := parseCursor(c)
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	page, ok, err := repository.SearchSubreddits(middleware.DB(c), searchQuery, cur)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.JSON(http.StatusOK, models.SubredditPage{
		Subreddits:  page.Items,
		ScoreCursor: page.Next.Score,
		IDCursor:    page.Next.ID,
	})
}

func (h *SubredditHandler) Get(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	subreddit, err := repository.GetSubreddit(middleware.DB(c), subredditID)
	if err != nil {
		c.Error(err)
		return
	}
	if subreddit == nil {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.JSON(http.StatusOK, subreddit)
}

// Update renames a subreddit. Only the owner's rows match, so a foreign
// subreddit reads as not found.
func (h *SubredditHandler) Update(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.UpdateSubredditRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	if input.Name != nil {
		if exists, err := repository.SubredditNameExists(db, *input.Name); err != nil {
			c.Error(err)
			return
		} else if exists {
			c.Error(apperror.ErrSubredditNameExists)
			return
		}
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}

	if len(updates) > 0 {
		updated, err := repository.UpdateSubreddit(db, subredditID, middleware.CurrentUserID(c), updates)
		if err != nil {
			c.Error(err)
			return
		}
		if !updated {
			c.Error(apperror.ErrSubredditNotFound)
			return
		}
	}

	subreddit, err := repository.GetSubreddit(db, subredditID)
	if err != nil {
		c.Error(err)
		return
	}
	if subreddit == nil {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.JSON(http.StatusOK, subreddit)
}

func (h *SubredditHandler) Delete(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	deleted, err := repository.DeleteSubreddit(middleware.DB(c), subredditID, middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.Status(http.StatusOK)
}

func (h *SubredditHandler) Follow(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	followed, err := repository.FollowSubreddit(middleware.DB(c), middleware.CurrentUserID(c), subredditID)
	if err != nil {
		c.Error(err)
		return
	}
	if !followed {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.Status(http.StatusOK)
}

func (h *SubredditHandler) Unfollow(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	unfollowed, err := repository.UnfollowSubreddit(middleware.DB(c), middleware.CurrentUserID(c), subredditID)
	if err != nil {
		c.Error(err)
		return
	}
	if !unfollowed {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}

	c.Status(http.StatusOK)
}
