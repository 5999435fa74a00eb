package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-api/internal/auth"
	"github.com/emilythestrangee/reddit-api/internal/config"
	"github.com/emilythestrangee/reddit-api/internal/database"
	"github.com/emilythestrangee/reddit-api/internal/handlers"
	"github.com/emilythestrangee/reddit-api/internal/middleware"
)

type Server struct {
	settings *config.Settings
	db       *gorm.DB
	rdb      *redis.Client
	issuer   *auth.TokenIssuer
	handler  *handlers.Handler
}

// New wires the application together and returns a configured HTTP
// server. Every component receives its dependencies here; nothing is
// reached through globals.
func New(settings *config.Settings, db *gorm.DB, rdb *redis.Client) (*http.Server, error) {
	issuer, err := auth.NewTokenIssuer(settings.JWTKey, settings.JWTAlgorithm, settings.JWTTTL)
	if err != nil {
		return nil, err
	}
	refresh := auth.NewRefreshStore(rdb, settings.RefreshTokenTTL)

	s := &Server{
		settings: settings,
		db:       db,
		rdb:      rdb,
		issuer:   issuer,
		handler:  handlers.New(issuer, refresh),
	}

	router := s.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + settings.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().Str("port", settings.Port).Msg("🚀 Server starting")
	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Error translation wraps everything below it; the transaction
	// middleware commits or rolls back before the response status is
	// decided.
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(s.rdb, s.settings.RateLimit))
	r.Use(middleware.Transaction(s.db))

	authRequired := middleware.RequireAuth(s.issuer)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, database.Health(s.db))
	})

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/sign-up", s.handler.Auth.SignUp)
		authGroup.POST("/sign-in", s.handler.Auth.SignIn)
		authGroup.POST("/sign-out", s.handler.Auth.SignOut)
		authGroup.POST("/refresh", s.handler.Auth.Refresh)
		authGroup.DELETE("/redis", s.handler.Auth.ResetStore)
	}

	// User routes (authentication required)
	users := r.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/me", s.handler.User.GetMe)
		users.PATCH("/me", s.handler.User.UpdateMe)
		users.DELETE("/me", s.handler.User.DeleteMe)
	}

	// Subreddit routes (public reads)
	subreddits := r.Group("/subreddits")
	{
		subreddits.GET("", s.handler.Subreddit.List)
		subreddits.GET("/:subreddit_id", s.handler.Subreddit.Get)

		protected := subreddits.Group("")
		protected.Use(authRequired)
		{
			protected.POST("", s.handler.Subreddit.Create)
			protected.PATCH("/:subreddit_id", s.handler.Subreddit.Update)
			protected.DELETE("/:subreddit_id", s.handler.Subreddit.Delete)
			protected.POST("/:subreddit_id/followers", s.handler.Subreddit.Follow)
			protected.DELETE("/:subreddit_id/followers", s.handler.Subreddit.Unfollow)
		}
	}

	// Post routes (public reads)
	posts := subreddits.Group("/:subreddit_id/posts")
	{
		posts.GET("", s.handler.Post.List)
		posts.GET("/:post_id", s.handler.Post.Get)

		protected := posts.Group("")
		protected.Use(authRequired)
		{
			protected.POST("", s.handler.Post.Create)
			protected.PATCH("/:post_id", s.handler.Post.Update)
			protected.DELETE("/:post_id", s.handler.Post.Delete)
			protected.POST("/:post_id/upvote", s.handler.Post.Vote)
			protected.PATCH("/:post_id/upvote", s.handler.Post.ToggleVote)
			protected.DELETE("/:post_id/upvote", s.handler.Post.RemoveVote)
		}
	}

	// Comment routes (public reads)
	comments := posts.Group("/:post_id/comments")
	{
		comments.GET("", s.handler.Comment.List)
		comments.GET("/:comment_id", s.handler.Comment.Get)
		comments.GET("/:comment_id/replies", s.handler.Comment.Replies)

		protected := comments.Group("")
		protected.Use(authRequired)
		{
			protected.POST("", s.handler.Comment.Create)
			protected.PATCH("/:comment_id", s.handler.Comment.Update)
			protected.DELETE("/:comment_id", s.handler.Comment.Delete)
			protected.POST("/:comment_id/upvote", s.handler.Comment.Vote)
			protected.PATCH("/:comment_id/upvote", s.handler.Comment.ToggleVote)
			protected.DELETE("/:comment_id/upvote", s.handler.Comment.RemoveVote)
		}
	}

	// Database maintenance routes (tests and local development)
	db := r.Group("/db")
	{
		db.PUT("", s.handler.DB.Reset)
		db.DELETE("", s.handler.DB.Drop)
		db.POST("/extensions", s.handler.DB.EnableExtensions)
		db.DELETE("/extensions", s.handler.DB.DisableExtensions)
	}

	return r
}
