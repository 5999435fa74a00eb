package models

import "time"

type Post struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Body        RichText  `gorm:"serializer:json;not null" json:"body"`
	UserID      int       `gorm:"not null" json:"user_id"`
	SubredditID int       `gorm:"not null" json:"subreddit_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostUpvote holds a single user's vote on a post: true is an upvote,
// false a downvote. One row per (post, user).
type PostUpvote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Value     bool      `gorm:"not null" json:"value"`
	PostID    int       `gorm:"not null;uniqueIndex:idx_post_voter" json:"post_id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_post_voter" json:"user_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title string     `json:"title" binding:"required"`
	Body  []Markdown `json:"body" binding:"required,dive"`
}

type UpdatePostRequest struct {
	Title *string    `json:"title,omitempty"`
	Body  []Markdown `json:"body,omitempty" binding:"omitempty,dive"`
}

type VoteRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// PostRead is the read model for post responses: the row, the author's
// display name and live vote/comment aggregates.
type PostRead struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Body            RichText  `gorm:"serializer:json" json:"body"`
	UserID          int       `json:"user_id"`
	SubredditID     int       `json:"subreddit_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserDisplayName string    `json:"user_display_name"`
	UpvoteCount     int       `json:"upvote_count"`
	DownvoteCount   int       `json:"downvote_count"`
	CommentCount    int       `json:"comment_count"`
	ScoreCursor     float64   `json:"-"`
}

type PostPage struct {
	Posts       []PostRead `json:"posts"`
	ScoreCursor float64    `json:"score_cursor"`
	IDCursor    int        `json:"id_cursor"`
}
