package models

import "time"

type Comment struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Body            RichText  `gorm:"serializer:json;not null" json:"body"`
	UserID          int       `gorm:"not null" json:"user_id"`
	PostID          int       `gorm:"not null" json:"post_id"`
	ParentCommentID *int      `json:"parent_comment_id"` // nil = top-level comment on the post
	User            User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post            Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Parent          *Comment  `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CommentUpvote holds a single user's vote on a comment. One row per
// (comment, user).
type CommentUpvote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Value     bool      `gorm:"not null" json:"value"`
	CommentID int       `gorm:"not null;uniqueIndex:idx_comment_voter" json:"comment_id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_comment_voter" json:"user_id"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	ParentCommentID *int       `json:"parent_comment_id"`
	Body            []Markdown `json:"body" binding:"required,dive"`
}

type UpdateCommentRequest struct {
	Body []Markdown `json:"body,omitempty" binding:"omitempty,dive"`
}

// CommentRead is the read model for comment responses: the row, the
// author's display name and live vote/reply aggregates. The upvote
// count doubles as the ranking score for comment listings.
type CommentRead struct {
	ID              int       `json:"id"`
	Body            RichText  `gorm:"serializer:json" json:"body"`
	UserID          int       `json:"user_id"`
	PostID          int       `json:"post_id"`
	ParentCommentID *int      `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserDisplayName string    `json:"user_display_name"`
	UpvoteCount     int       `json:"upvote_count"`
	DownvoteCount   int       `json:"downvote_count"`
	ReplyCount      int       `json:"reply_count"`
}

type CommentPage struct {
	Comments    []CommentRead `json:"comments"`
	ScoreCursor int           `json:"score_cursor"`
	IDCursor    int           `json:"id_cursor"`
}
