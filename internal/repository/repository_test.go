package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/database"
	"github.com/emilythestrangee/reddit-api/internal/models"
)

// testDB opens a fresh in-memory sqlite database named after the test,
// with foreign keys on so cascades behave like production.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	url := fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := database.New(url)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := CreateUser(db, username, "not-a-real-hash", username+"@example.com", "display-"+username, "")
	require.NoError(t, err)
	return user
}

func seedSubreddit(t *testing.T, db *gorm.DB, name string, userID int) int {
	t.Helper()
	id, err := CreateSubreddit(db, name, userID)
	require.NoError(t, err)
	return id
}

func seedPost(t *testing.T, db *gorm.DB, title string, userID, subredditID int) int {
	t.Helper()
	body := models.RichText{{Type: "paragraph", Content: "body of " + title}}
	id, err := CreatePost(db, title, body, userID, subredditID)
	require.NoError(t, err)
	return id
}

func seedComment(t *testing.T, db *gorm.DB, userID, postID int, parentCommentID *int) int {
	t.Helper()
	body := models.RichText{{Type: "paragraph", Content: "a comment"}}
	id, err := SubmitComment(db, body, userID, postID, parentCommentID)
	require.NoError(t, err)
	return id
}
