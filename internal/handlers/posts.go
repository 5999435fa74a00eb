package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/repository"
)

type PostHandler struct{}

// Create submits a post to the subreddit in the path.
func (h *PostHandler) Create(c *gin.Context) {
	subredditID, ok := paramInt(c, "subreddit_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	postID, err := repository.CreatePost(db, input.Title, input.Body, middleware.CurrentUserID(c), subredditID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		c.Error(apperror.ErrSubredditNotFound)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	post, err := repository.GetPost(db, postID)
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(apperror.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List returns one page of posts ranked by title similarity to the
// required search_query parameter.
func (h *PostHandler) List(c *gin.Context) {
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

	page, ok, err := repository.SearchPosts(middleware.DB(c), searchQuery, cur)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperror.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusOK, models.PostPage{
		Posts:       page.Items,
		ScoreCursor: page.Next.Score,
		IDCursor:    page.Next.ID,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	post, err := repository.GetPost(middleware.DB(c), postID)
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(apperror.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Body != nil {
		updates["body"] = models.RichText(input.Body)
	}

	if len(updates) > 0 {
		updated, err := repository.UpdatePost(db, postID, middleware.CurrentUserID(c), updates)
		if err != nil {
			c.Error(err)
			return
		}
		if !updated {
			c.Error(apperror.ErrPostNotFound)
			return
		}
	}

	post, err := repository.GetPost(db, postID)
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(apperror.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	deleted, err := repository.DeletePost(middleware.DB(c), postID, middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(apperror.ErrPostNotFound)
		return
	}

	c.Status(http.StatusOK)
}

// Vote casts the current user's vote on a post. A pair that already
// voted must toggle or remove instead.
func (h *PostHandler) Vote(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	created, err := repository.CastPostVote(middleware.DB(c), *input.Value, middleware.CurrentUserID(c), postID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		c.Error(apperror.ErrPostNotFound)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	if !created {
		c.Error(apperror.ErrPostVoteExists)
		return
	}

	c.Status(http.StatusCreated)
}

// ToggleVote flips the current user's existing vote on a post.
func (h *PostHandler) ToggleVote(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	toggled, err := repository.TogglePostVote(middleware.DB(c), middleware.CurrentUserID(c), postID)
	if err != nil {
		c.Error(err)
		return
	}
	if !toggled {
		c.Error(apperror.ErrPostVoteNotFound)
		return
	}

	c.Status(http.StatusOK)
}

func (h *PostHandler) RemoveVote(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	removed, err := repository.RemovePostVote(middleware.DB(c), middleware.CurrentUserID(c), postID)
	if err != nil {
		c.Error(err)
		return
	}
	if !removed {
		c.Error(apperror.ErrPostVoteNotFound)
		return
	}

	c.Status(http.StatusOK)
}
