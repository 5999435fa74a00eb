package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/models"
	"github.com/emilythestrangee/reddit-api/internal/pagination"
)

func TestSubmitAndGetComment(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	body := models.RichText{{Type: "paragraph", Content: "nice post"}}
	id, err := SubmitComment(db, body, author.ID, postID, nil)
	require.NoError(t, err)

	comment, err := GetComment(db, id)
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, body, comment.Body)
	assert.Equal(t, postID, comment.PostID)
	assert.Nil(t, comment.ParentCommentID)
	assert.Equal(t, "display-author", comment.UserDisplayName)
	assert.Zero(t, comment.UpvoteCount)
	assert.Zero(t, comment.DownvoteCount)
	assert.Zero(t, comment.ReplyCount)
}

func TestGetCommentNotFound(t *testing.T) {
	db := testDB(t)

	comment, err := GetComment(db, 999)
	require.NoError(t, err)
	assert.Nil(t, comment)
}

func TestSubmitCommentMissingPost(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")

	body := models.RichText{{Type: "paragraph", Content: "orphan"}}
	_, err := SubmitComment(db, body, author.ID, 999, nil)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestSubmitReplyCountsOnParent(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	parent := seedComment(t, db, author.ID, postID, nil)
	reply := seedComment(t, db, author.ID, postID, &parent)

	got, err := GetComment(db, parent)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ReplyCount)

	gotReply, err := GetComment(db, reply)
	require.NoError(t, err)
	require.NotNil(t, gotReply)
	require.NotNil(t, gotReply.ParentCommentID)
	assert.Equal(t, parent, *gotReply.ParentCommentID)
}

func TestUpdateCommentOwnership(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	intruder := seedUser(t, db, "intruder")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)
	id := seedComment(t, db, author.ID, postID, nil)

	newBody := models.RichText{{Type: "paragraph", Content: "edited"}}
	updated, err := UpdateComment(db, id, intruder.ID, map[string]any{"body": newBody})
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = UpdateComment(db, id, author.ID, map[string]any{"body": newBody})
	require.NoError(t, err)
	assert.True(t, updated)

	comment, err := GetComment(db, id)
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, newBody, comment.Body)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	parent := seedComment(t, db, author.ID, postID, nil)
	reply := seedComment(t, db, voter.ID, postID, &parent)
	created, err := CastCommentVote(db, true, voter.ID, parent)
	require.NoError(t, err)
	require.True(t, created)

	deleted, err := DeleteComment(db, parent, author.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	gone, err := GetComment(db, reply)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var count int64
	require.NoError(t, db.Model(&models.CommentUpvote{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentVoteLifecycle(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)
	commentID := seedComment(t, db, author.ID, postID, nil)

	counts := func() (int, int) {
		comment, err := GetComment(db, commentID)
		require.NoError(t, err)
		require.NotNil(t, comment)
		return comment.UpvoteCount, comment.DownvoteCount
	}

	created, err := CastCommentVote(db, true, voter.ID, commentID)
	require.NoError(t, err)
	assert.True(t, created)
	up, down := counts()
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	created, err = CastCommentVote(db, true, voter.ID, commentID)
	require.NoError(t, err)
	assert.False(t, created)

	toggled, err := ToggleCommentVote(db, voter.ID, commentID)
	require.NoError(t, err)
	assert.True(t, toggled)
	up, down = counts()
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)

	removed, err := RemoveCommentVote(db, voter.ID, commentID)
	require.NoError(t, err)
	assert.True(t, removed)
	up, down = counts()
	assert.Equal(t, 0, up)
	assert.Equal(t, 0, down)

	toggled, err = ToggleCommentVote(db, voter.ID, commentID)
	require.NoError(t, err)
	assert.False(t, toggled)
}

// seedVotes gives a comment the requested number of upvotes, each from
// a fresh user.
func seedVotes(t *testing.T, db *gorm.DB, commentID, n int, usernames *int) {
	t.Helper()
	for i := 0; i < n; i++ {
		*usernames++
		voter := seedUser(t, db, fmt.Sprintf("voter%d", *usernames))
		created, err := CastCommentVote(db, true, voter.ID, commentID)
		require.NoError(t, err)
		require.True(t, created)
	}
}

func TestGetPostCommentsPagination(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	// Three comments with 2, 0 and 1 upvotes. Pages hold one comment,
	// ordered by upvote count descending.
	first := seedComment(t, db, author.ID, postID, nil)
	second := seedComment(t, db, author.ID, postID, nil)
	third := seedComment(t, db, author.ID, postID, nil)

	var usernames int
	seedVotes(t, db, first, 2, &usernames)
	seedVotes(t, db, third, 1, &usernames)

	var got []int
	var cur *pagination.Cursor
	for {
		page, ok, err := GetPostComments(db, postID, cur)
		require.NoError(t, err)
		if !ok {
			break
		}
		require.Len(t, page.Items, 1)
		got = append(got, page.Items[0].ID)
		cur = &page.Next
	}

	assert.Equal(t, []int{first, third, second}, got)
}

func TestGetPostCommentsTiedVotes(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	// All tied at zero votes; the id tie-break keeps the walk total.
	var want []int
	for i := 0; i < 3; i++ {
		want = append(want, seedComment(t, db, author.ID, postID, nil))
	}

	var got []int
	var cur *pagination.Cursor
	for {
		page, ok, err := GetPostComments(db, postID, cur)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, page.Items[0].ID)
		cur = &page.Next
	}

	assert.Equal(t, want, got)
}

func TestGetCommentReplies(t *testing.T) {
	db := testDB(t)
	author := seedUser(t, db, "author")
	subID := seedSubreddit(t, db, "golang", author.ID)
	postID := seedPost(t, db, "discussed", author.ID, subID)

	parent := seedComment(t, db, author.ID, postID, nil)
	other := seedComment(t, db, author.ID, postID, nil)

	var want []int
	for i := 0; i < 3; i++ {
		want = append(want, seedComment(t, db, author.ID, postID, &parent))
	}
	// A reply to a different comment must not leak in.
	seedComment(t, db, author.ID, postID, &other)

	page, ok, err := GetCommentReplies(db, parent, nil)
	require.NoError(t, err)
	require.True(t, ok)

	var got []int
	for _, reply := range page.Items {
		got = append(got, reply.ID)
	}
	assert.Equal(t, want, got)

	_, ok, err = GetCommentReplies(db, parent, &page.Next)
	require.NoError(t, err)
	assert.False(t, ok)
}
