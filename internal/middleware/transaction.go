package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbKey = "db"

// Transaction opens one transaction per request. It commits when the
// handler chain finished without recording an error and rolls back
// otherwise, including on panic. Handlers reach the transaction through
// DB.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.WithContext(c.Request.Context()).Begin()
		if tx.Error != nil {
			c.Error(tx.Error)
			c.Abort()
			return
		}
		c.Set(dbKey, tx)

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			tx.Rollback()
			return
		}
		// The handler has already written its response at this point:
		// a failed commit can be recorded and logged, but the status
		// the client saw cannot be taken back.
		if err := tx.Commit().Error; err != nil {
			c.Error(err)
		}
	}
}

// DB returns the transaction opened for the current request.
func DB(c *gin.Context) *gorm.DB {
	return c.MustGet(dbKey).(*gorm.DB)
}
