package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/pagination"
)

// Post search returns pages of 3.
const postPageSize = 3

func CreatePost(db *gorm.DB, title string, body models.RichText, userID, subredditID int) (int, error) {
	post := models.Post{Title: title, Body: body, UserID: userID, SubredditID: subredditID}
	if err := db.Create(&post).Error; err != nil {
		return 0, err
	}
	return post.ID, nil
}

func DeletePost(db *gorm.DB, postID, userID int) (bool, error) {
	result := db.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
	return result.RowsAffected > 0, result.Error
}

func UpdatePost(db *gorm.DB, postID, userID int, updates map[string]any) (bool, error) {
	result := db.Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// postReadQuery joins the author plus independent conditional joins for
// up- and downvotes and one for comments, so that a post with no votes
// still reads with counts of 0.
func postReadQuery(db *gorm.DB) *gorm.DB {
	return db.Table("posts").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN post_upvotes up ON up.post_id = posts.id AND up.value").
		Joins("LEFT JOIN post_upvotes down ON down.post_id = posts.id AND NOT down.value").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id, users.display_name")
}

const postReadColumns = "posts.*, users.display_name AS user_display_name, " +
	"COUNT(DISTINCT up.id) AS upvote_count, " +
	"COUNT(DISTINCT down.id) AS downvote_count, " +
	"COUNT(DISTINCT comments.id) AS comment_count"

func GetPost(db *gorm.DB, postID int) (*models.PostRead, error) {
	var row models.PostRead
	err := postReadQuery(db).
		Select(postReadColumns).
		Where("posts.id = ?", postID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SearchPosts returns one page of posts ranked by trigram similarity
// between their title and the search query. ok is false when the page
// is empty.
func SearchPosts(db *gorm.DB, searchQuery string, cur *pagination.Cursor) (pagination.Page[models.PostRead], bool, error) {
	ranked := pagination.Ranked{
		ScoreExpr:  "similarity(posts.title, ?)",
		ScoreArgs:  []any{searchQuery},
		ScoreAlias: "score_cursor",
		IDColumn:   "posts.id",
		Limit:      postPageSize,
	}

	var rows []models.PostRead
	err := postReadQuery(db).
		Select(postReadColumns+", similarity(posts.title, ?) AS score_cursor", searchQuery).
		Scopes(ranked.Scope(cur)).
		Scan(&rows).Error
	if err != nil {
		return pagination.Page[models.PostRead]{}, false, err
	}

	page, ok := pagination.NewPage(rows, func(r models.PostRead) pagination.Cursor {
		return pagination.Cursor{Score: r.ScoreCursor, ID: r.ID}
	})
	return page, ok, nil
}

// CastPostVote inserts a vote row. A second cast for the same
// (post, user) pair hits the unique constraint and is reported as
// created=false without touching the existing row.
func CastPostVote(db *gorm.DB, value bool, userID, postID int) (bool, error) {
	vote := models.PostUpvote{Value: value, PostID: postID, UserID: userID}
	err := db.Create(&vote).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TogglePostVote flips the stored vote in place and reports whether a
// row existed to flip.
func TogglePostVote(db *gorm.DB, userID, postID int) (bool, error) {
	result := db.Model(&models.PostUpvote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("value", gorm.Expr("NOT value"))
	return result.RowsAffected > 0, result.Error
}

func RemovePostVote(db *gorm.DB, userID, postID int) (bool, error) {
	result := db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostUpvote{})
	return result.RowsAffected > 0, result.Error
}
