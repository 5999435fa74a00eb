package models

import "time"

type Subreddit struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:25;uniqueIndex;not null" json:"name"`
	UserID    int       `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubredditFollow records one user following one subreddit. The pair is
// unique; rows go away with either side.
type SubredditFollow struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	SubredditID int       `gorm:"not null;uniqueIndex:idx_subreddit_follower" json:"subreddit_id"`
	UserID      int       `gorm:"not null;uniqueIndex:idx_subreddit_follower" json:"user_id"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID;constraint:OnDelete:CASCADE" json:"-"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSubredditRequest struct {
	Name string `json:"name" binding:"required,max=25"`
}

type UpdateSubredditRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=25"`
}

// SubredditRead is the read model for subreddit responses: the row plus
// the owner's display name and a live follower count.
type SubredditRead struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	UserID          int       `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserDisplayName string    `json:"user_display_name"`
	FollowerCount   int       `json:"follower_count"`
	ScoreCursor     float64   `json:"-"`
}

type SubredditPage struct {
	Subreddits  []SubredditRead `json:"subreddits"`
	ScoreCursor float64         `json:"score_cursor"`
	IDCursor    int             `json:"id_cursor"`
}
