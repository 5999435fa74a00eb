package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	db := testDB(t)

	created, err := CreateUser(db, "sarah", "hash", "sarah@example.com", "Sarah", "avatar.png")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	user, err := GetUser(db, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "sarah", user.Username)
	assert.Equal(t, "sarah@example.com", user.Email)
	assert.Equal(t, "Sarah", user.DisplayName)
	assert.Equal(t, "avatar.png", user.Avatar)
}

func TestGetUserNotFound(t *testing.T) {
	db := testDB(t)

	user, err := GetUser(db, 999)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "sarah")

	_, err := CreateUser(db, "sarah", "hash", "other@example.com", "Other", "")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpdateUser(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "sarah")

	updated, err := UpdateUser(db, user.ID, map[string]any{"display_name": "Sarah Again", "avatar": "new.png"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Sarah Again", updated.DisplayName)
	assert.Equal(t, "new.png", updated.Avatar)
	assert.Equal(t, "sarah", updated.Username)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := testDB(t)

	updated, err := UpdateUser(db, 999, map[string]any{"avatar": "new.png"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteUser(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "sarah")

	deleted, err := DeleteUser(db, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := GetUser(db, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = DeleteUser(db, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)
	authorComment := seedComment(t, db, author.ID, postID, nil)

	// Everything the voter authored: a comment, a post vote and a
	// comment vote on someone else's comment.
	seedComment(t, db, voter.ID, postID, nil)
	created, err := CastPostVote(db, true, voter.ID, postID)
	require.NoError(t, err)
	require.True(t, created)
	created, err = CastCommentVote(db, true, voter.ID, authorComment)
	require.NoError(t, err)
	require.True(t, created)

	deleted, err := DeleteUser(db, voter.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count) // only the author's comment survives
	require.NoError(t, db.Model(&models.PostUpvote{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.CommentUpvote{}).Count(&count).Error)
	assert.Zero(t, count)

	post, err := GetPost(db, postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Zero(t, post.UpvoteCount)
	assert.Equal(t, 1, post.CommentCount)
}

func TestExistenceChecks(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "sarah")

	exists, err := UsernameExists(db, "sarah")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = UsernameExists(db, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = EmailExists(db, "sarah@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = EmailExists(db, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = DisplayNameExists(db, "display-sarah")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = DisplayNameExists(db, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetUserIDByCredentials(t *testing.T) {
	db := testDB(t)

	hash, err := auth.HashPassword("1234")
	require.NoError(t, err)
	user, err := CreateUser(db, "sarah", hash, "sarah@example.com", "Sarah", "")
	require.NoError(t, err)

	id, err := GetUserIDByCredentials(db, "sarah", "1234")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	id, err = GetUserIDByCredentials(db, "sarah", "wrong")
	require.NoError(t, err)
	assert.Zero(t, id)

	id, err = GetUserIDByCredentials(db, "nobody", "1234")
	require.NoError(t, err)
	assert.Zero(t, id)
}
