package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/models"
)

func TestCreateAndGetPost(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)

	body := models.RichText{
		{Type: "heading", Content: "Generics"},
		{Type: "paragraph", Content: "They shipped."},
	}
	id, err := CreatePost(db, "Generics landed", body, author.ID, subID)
	require.NoError(t, err)

	post, err := GetPost(db, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Generics landed", post.Title)
	assert.Equal(t, body, post.Body)
	assert.Equal(t, "display-author", post.UserDisplayName)
	assert.Zero(t, post.UpvoteCount)
	assert.Zero(t, post.DownvoteCount)
	assert.Zero(t, post.CommentCount)
}

func TestGetPostNotFound(t *testing.T) {
	db := testDB(t)

	post, err := GetPost(db, 999)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestCreatePostMissingSubreddit(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")

	body := models.RichText{{Type: "paragraph", Content: "orphan"}}
	_, err := CreatePost(db, "nowhere", body, author.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestUpdatePostOwnership(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	intruder := seedUser(t, db, "intruder")
	subID := seedSubreddit(t, db, "golang", author.ID)
	id := seedPost(t, db, "original", author.ID, subID)

	updated, err := UpdatePost(db, id, intruder.ID, map[string]any{"title": "stolen"})
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = UpdatePost(db, id, author.ID, map[string]any{"title": "revised"})
	require.NoError(t, err)
	assert.True(t, updated)

	post, err := GetPost(db, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "revised", post.Title)
}

func TestDeletePostOwnership(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	intruder := seedUser(t, db, "intruder")
	subID := seedSubreddit(t, db, "golang", author.ID)
	id := seedPost(t, db, "doomed", author.ID, subID)

	deleted, err := DeletePost(db, id, intruder.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = DeletePost(db, id, author.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	post, err := GetPost(db, id)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostVoteLifecycle(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "voted on", author.ID, subID)

	counts := func() (int, int) {
		post, err := GetPost(db, postID)
		require.NoError(t, err)
		require.NotNil(t, post)
		return post.UpvoteCount, post.DownvoteCount
	}

	created, err := CastPostVote(db, true, voter.ID, postID)
	require.NoError(t, err)
	assert.True(t, created)
	up, down := counts()
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	// A second cast must not overwrite the stored vote.
	created, err = CastPostVote(db, false, voter.ID, postID)
	require.NoError(t, err)
	assert.False(t, created)
	up, down = counts()
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	toggled, err := TogglePostVote(db, voter.ID, postID)
	require.NoError(t, err)
	assert.True(t, toggled)
	up, down = counts()
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)

	toggled, err = TogglePostVote(db, voter.ID, postID)
	require.NoError(t, err)
	assert.True(t, toggled)
	up, down = counts()
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	removed, err := RemovePostVote(db, voter.ID, postID)
	require.NoError(t, err)
	assert.True(t, removed)
	up, down = counts()
	assert.Equal(t, 0, up)
	assert.Equal(t, 0, down)

	removed, err = RemovePostVote(db, voter.ID, postID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTogglePostVoteWithoutVote(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "untouched", author.ID, subID)

	toggled, err := TogglePostVote(db, author.ID, postID)
	require.NoError(t, err)
	assert.False(t, toggled)
}

func TestCastPostVoteMissingPost(t *testing.T) {
	db := testDB(t)
	voter := seedUser(t, db, "voter")

	_, err := CastPostVote(db, true, voter.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestPostCommentCount(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	top := seedComment(t, db, author.ID, postID, nil)
	seedComment(t, db, author.ID, postID, &top)

	post, err := GetPost(db, postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	// Replies carry the post id too, so they count.
	assert.Equal(t, 2, post.CommentCount)
}

func TestDeletePostCascades(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "doomed", author.ID, subID)

	commentID := seedComment(t, db, voter.ID, postID, nil)
	created, err := CastPostVote(db, true, voter.ID, postID)
	require.NoError(t, err)
	require.True(t, created)
	created, err = CastCommentVote(db, true, author.ID, commentID)
	require.NoError(t, err)
	require.True(t, created)

	deleted, err := DeletePost(db, postID, author.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.PostUpvote{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.CommentUpvote{}).Count(&count).Error)
	assert.Zero(t, count)
}
