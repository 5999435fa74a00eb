package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/pagination"
)

// Subreddit search returns pages of 10.
const subredditPageSize = 10

func CreateSubreddit(db *gorm.DB, name string, userID int) (int, error) {
	subreddit := models.Subreddit{Name: name, UserID: userID}
	if err := db.Create(&subreddit).Error; err != nil {
		return 0, err
	}
	return subreddit.ID, nil
}

func DeleteSubreddit(db *gorm.DB, subredditID, userID int) (bool, error) {
	result := db.Where("id = ? AND user_id = ?", subredditID, userID).Delete(&models.Subreddit{})
	return result.RowsAffected > 0, result.Error
}

func UpdateSubreddit(db *gorm.DB, subredditID, userID int, updates map[string]any) (bool, error) {
	result := db.Model(&models.Subreddit{}).
		Where("id = ? AND user_id = ?", subredditID, userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

func subredditReadQuery(db *gorm.DB) *gorm.DB {
	return db.Table("subreddits").
		Joins("LEFT JOIN users ON users.id = subreddits.user_id").
		Joins("LEFT JOIN subreddit_follows ON subreddit_follows.subreddit_id = subreddits.id").
		Group("subreddits.id, users.display_name")
}

func GetSubreddit(db *gorm.DB, subredditID int) (*models.SubredditRead, error) {
	var row models.SubredditRead
	err := subredditReadQuery(db).
		Select("subreddits.*, users.display_name AS user_display_name, COUNT(subreddit_follows.id) AS follower_count").
		Where("subreddits.id = ?", subredditID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SearchSubreddits returns one page of subreddits ranked by trigram
// similarity between their name and the search query. ok is false when
// the page is empty.
func SearchSubreddits(db *gorm.DB, searchQuery string, cur *pagination.Cursor) (pagination.Page[models.SubredditRead], bool, error) {
	ranked := pagination.Ranked{
		ScoreExpr:  "similarity(subreddits.name, ?)",
		ScoreArgs:  []any{searchQuery},
		ScoreAlias: "score_cursor",
		IDColumn:   "subreddits.id",
		Limit:      subredditPageSize,
	}

	var rows []models.SubredditRead
	err := subredditReadQuery(db).
		Select(
			"subreddits.*, users.display_name AS user_display_name, "+
				"COUNT(subreddit_follows.id) AS follower_count, "+
				"similarity(subreddits.name, ?) AS score_cursor",
			searchQuery,
		).
		Scopes(ranked.Scope(cur)).
		Scan(&rows).Error
	if err != nil {
		return pagination.Page[models.SubredditRead]{}, false, err
	}

	page, ok := pagination.NewPage(rows, func(r models.SubredditRead) pagination.Cursor {
		return pagination.Cursor{Score: r.ScoreCursor, ID: r.ID}
	})
	return page, ok, nil
}

// FollowSubreddit inserts the follow pair. Following twice is a no-op
// reported as false, as is following a subreddit that doesn't exist.
func FollowSubreddit(db *gorm.DB, userID, subredditID int) (bool, error) {
	follow := models.SubredditFollow{SubredditID: subredditID, UserID: userID}
	err := db.Create(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func UnfollowSubreddit(db *gorm.DB, userID, subredditID int) (bool, error) {
	result := db.Where("subreddit_id = ? AND user_id = ?", subredditID, userID).
		Delete(&models.SubredditFollow{})
	return result.RowsAffected > 0, result.Error
}

func SubredditNameExists(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Model(&models.Subreddit{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
