package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-api/internal/database"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
)

// DBHandler backs the /db maintenance routes used by tests and local
// development.
type DBHandler struct{}

// Reset drops and recreates the whole schema.
func (h *DBHandler) Reset(c *gin.Context) {
	if err := database.Reset(middleware.DB(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// Drop removes every table.
func (h *DBHandler) Drop(c *gin.Context) {
	if err := database.Drop(middleware.DB(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *DBHandler) EnableExtensions(c *gin.Context) {
	if err := database.EnableExtensions(middleware.DB(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *DBHandler) DisableExtensions(c *gin.Context) {
	if err := database.DisableExtensions(middleware.DB(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
