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

type CommentHandler struct{}

// Create submits a comment on the post in the path, optionally as a
// reply to another comment.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	commentID, err := repository.SubmitComment(db, input.Body, middleware.CurrentUserID(c), postID, input.ParentCommentID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		c.Error(apperror.ErrPostNotFound)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	comment, err := repository.GetComment(db, commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List returns one page of the post's comments ranked by upvote count.
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := paramInt(c, "post_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	cur, ok := parseCursor(c)
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	page, ok, err := repository.GetPostComments(middleware.DB(c), postID, cur)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, models.CommentPage{
		Comments:    page.Items,
		ScoreCursor: int(page.Next.Score),
		IDCursor:    page.Next.ID,
	})
}

// Replies returns one page of a comment's direct replies ranked by
// upvote count.
func (h *CommentHandler) Replies(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	cur, ok := parseCursor(c)
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	page, ok, err := repository.GetCommentReplies(middleware.DB(c), commentID, cur)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, models.CommentPage{
		Comments:    page.Items,
		ScoreCursor: int(page.Next.Score),
		IDCursor:    page.Next.ID,
	})
}

func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	comment, err := repository.GetComment(middleware.DB(c), commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	db := middleware.DB(c)

	if input.Body != nil {
		updated, err := repository.UpdateComment(db, commentID, middleware.CurrentUserID(c),
			map[string]any{"body": models.RichText(input.Body)})
		if err != nil {
			c.Error(err)
			return
		}
		if !updated {
			c.Error(apperror.ErrCommentNotFound)
			return
		}
	}

	comment, err := repository.GetComment(db, commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	deleted, err := repository.DeleteComment(middleware.DB(c), commentID, middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(apperror.ErrCommentNotFound)
		return
	}

	c.Status(http.StatusOK)
}

// Vote casts the current user's vote on a comment.
func (h *CommentHandler) Vote(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.ErrValidation)
		return
	}

	created, err := repository.CastCommentVote(middleware.DB(c), *input.Value, middleware.CurrentUserID(c), commentID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		c.Error(apperror.ErrCommentNotFound)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	if !created {
		c.Error(apperror.ErrCommentVoteExists)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *CommentHandler) ToggleVote(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	toggled, err := repository.ToggleCommentVote(middleware.DB(c), middleware.CurrentUserID(c), commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if !toggled {
		c.Error(apperror.ErrCommentVoteNotFound)
		return
	}

	c.Status(http.StatusOK)
}

func (h *CommentHandler) RemoveVote(c *gin.Context) {
	commentID, ok := paramInt(c, "comment_id")
	if !ok {
		c.Error(apperror.ErrValidation)
		return
	}

	removed, err := repository.RemoveCommentVote(middleware.DB(c), middleware.CurrentUserID(c), commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if !removed {
		c.Error(apperror.ErrCommentVoteNotFound)
		return
	}

	c.Status(http.StatusOK)
}
