package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/pagination"
)

// Comment listings page one comment at a time; reply listings page 10.
const (
	commentPageSize = 1
	replyPageSize   = 10
)

func SubmitComment(db *gorm.DB, body models.RichText, userID, postID int, parentCommentID *int) (int, error) {
	comment := models.Comment{
		Body:            body,
		UserID:          userID,
		PostID:          postID,
		ParentCommentID: parentCommentID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return 0, err
	}
	return comment.ID, nil
}

func DeleteComment(db *gorm.DB, commentID, userID int) (bool, error) {
	result := db.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
	return result.RowsAffected > 0, result.Error
}

func UpdateComment(db *gorm.DB, commentID, userID int, updates map[string]any) (bool, error) {
	result := db.Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", commentID, userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

func commentReadQuery(db *gorm.DB) *gorm.DB {
	return db.Table("comments").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Joins("LEFT JOIN comment_upvotes up ON up.comment_id = comments.id AND up.value").
		Joins("LEFT JOIN comment_upvotes down ON down.comment_id = comments.id AND NOT down.value").
		Joins("LEFT JOIN comments replies ON replies.parent_comment_id = comments.id").
		Group("comments.id, users.display_name")
}

const commentReadColumns = "comments.*, users.display_name AS user_display_name, " +
	"COUNT(DISTINCT up.id) AS upvote_count, " +
	"COUNT(DISTINCT down.id) AS downvote_count, " +
	"COUNT(DISTINCT replies.id) AS reply_count"

func GetComment(db *gorm.DB, commentID int) (*models.CommentRead, error) {
	var row models.CommentRead
	err := commentReadQuery(db).
		Select(commentReadColumns).
		Where("comments.id = ?", commentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// commentRanking ranks comments by their live upvote count. The score
// is an aggregate, so the pagination predicate lands in HAVING.
func commentRanking(limit int) pagination.Ranked {
	return pagination.Ranked{
		ScoreExpr:  "COUNT(DISTINCT up.id)",
		ScoreAlias: "upvote_count",
		IDColumn:   "comments.id",
		Limit:      limit,
		Aggregate:  true,
	}
}

func commentCursor(r models.CommentRead) pagination.Cursor {
	return pagination.Cursor{Score: float64(r.UpvoteCount), ID: r.ID}
}

// GetPostComments returns one page of a post's comments ranked by
// upvote count. ok is false when the page is empty.
func GetPostComments(db *gorm.DB, postID int, cur *pagination.Cursor) (pagination.Page[models.CommentRead], bool, error) {
	var rows []models.CommentRead
	err := commentReadQuery(db).
		Select(commentReadColumns).
		Where("comments.post_id = ?", postID).
		Scopes(commentRanking(commentPageSize).Scope(cur)).
		Scan(&rows).Error
	if err != nil {
		return pagination.Page[models.CommentRead]{}, false, err
	}

	page, ok := pagination.NewPage(rows, commentCursor)
	return page, ok, nil
}

// GetCommentReplies returns one page of a comment's direct replies
// ranked by upvote count. ok is false when the page is empty.
func GetCommentReplies(db *gorm.DB, commentID int, cur *pagination.Cursor) (pagination.Page[models.CommentRead], bool, error) {
	var rows []models.CommentRead
	err := commentReadQuery(db).
		Select(commentReadColumns).
		Where("comments.parent_comment_id = ?", commentID).
		Scopes(commentRanking(replyPageSize).Scope(cur)).
		Scan(&rows).Error
	if err != nil {
		return pagination.Page[models.CommentRead]{}, false, err
	}

	page, ok := pagination.NewPage(rows, commentCursor)
	return page, ok, nil
}

// CastCommentVote inserts a vote row; a duplicate (comment, user) pair
// is reported as created=false.
func CastCommentVote(db *gorm.DB, value bool, userID, commentID int) (bool, error) {
	vote := models.CommentUpvote{Value: value, CommentID: commentID, UserID: userID}
	err := db.Create(&vote).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func ToggleCommentVote(db *gorm.DB, userID, commentID int) (bool, error) {
	result := db.Model(&models.CommentUpvote{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Update("value", gorm.Expr("NOT value"))
	return result.RowsAffected > 0, result.Error
}

func RemoveCommentVote(db *gorm.DB, userID, commentID int) (bool, error) {
	result := db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentUpvote{})
	return result.RowsAffected > 0, result.Error
}
