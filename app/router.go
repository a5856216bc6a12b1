// Package app wires the endpoints, middleware and dependencies into a
// runnable router
package app

import (
	"fmt"
	"time"

	"github.com/artemdev/contacts-book-rest-api/app/auth"
	"github.com/artemdev/contacts-book-rest-api/app/contact"
	"github.com/artemdev/contacts-book-rest-api/app/root"
	"github.com/artemdev/contacts-book-rest-api/app/user"
	"github.com/artemdev/contacts-book-rest-api/aws"
	"github.com/artemdev/contacts-book-rest-api/db"
	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/internal/service"
	"github.com/artemdev/contacts-book-rest-api/pkg/middleware"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	d := &internal.Deps{
		Tasks: service.NewTasks(2, 64),
	}

	gormDB, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d.DB = gormDB
	d.Users = repository.NewUserRepo(gormDB)
	d.Contacts = repository.NewContactRepo(gormDB)
	d.Argon = security.NewArgon()
	d.Mail = service.NewMailer()
	d.Avatars = service.NewGravatar()

	tokens, err := security.NewTokens(
		viper.GetString("jwt.secret"),
		viper.GetDuration("jwt.access_ttl"),
		viper.GetDuration("jwt.refresh_ttl"),
		viper.GetDuration("jwt.confirm_ttl"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service, %w", err)
	}
	d.Tokens = tokens

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.S3 = s3

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	jwt := middleware.NewAuthMiddleware(gormDB, tokens)
	adminOnly := middleware.RequireRoles(security.NewRoleAccess(model.RoleAdmin))
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates an access token
		m.GET("/validate", jwt, root.Validate)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup	-> Registers a new user and mails a confirmation link
		a.POST("/signup", func(c *gin.Context) { auth.Signup(c, d) })

		// POST /api/auth/login 	-> Logs in a user and returns a token pair
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/refresh	-> Rotates the token pair
		a.GET("/refresh", func(c *gin.Context) { auth.Refresh(c, d) })

		// GET /api/auth/confirm/:token	-> Confirms a user's email address
		a.GET("/confirm/:token", func(c *gin.Context) { auth.Confirm(c, d) })

		// POST /api/auth/request-email	-> Re-sends the confirmation mail
		a.POST("/request-email", func(c *gin.Context) { auth.RequestEmail(c, d) })
	}

	u := m.Group("/users", jwt)
	{
		// GET /api/users/me		-> Returns the authenticated user
		u.GET("/me", func(c *gin.Context) { user.Me(c, d) })

		// PATCH /api/users/avatar	-> Uploads a new avatar image
		u.PATCH("/avatar", middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { user.UpdateAvatar(c, d) })
	}

	ct := m.Group("/contacts", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/contacts		-> Lists the caller's contacts with optional filters
		ct.GET("", func(c *gin.Context) { contact.List(c, d) })

		// GET /api/contacts/birthdays	-> Lists contacts with a birthday in the next 7 days
		ct.GET("/birthdays", func(c *gin.Context) { contact.Birthdays(c, d) })

		// GET /api/contacts/all	-> Lists contacts across all users (admin only)
		ct.GET("/all", adminOnly, func(c *gin.Context) { contact.All(c, d) })

		// GET /api/contacts/:id	-> Returns a contact owned by the caller
		ct.GET("/:id", func(c *gin.Context) { contact.Get(c, d) })

		// POST /api/contacts		-> Creates a contact owned by the caller
		ct.POST("", func(c *gin.Context) { contact.Create(c, d) })

		// PUT /api/contacts/:id	-> Replaces a contact owned by the caller
		ct.PUT("/:id", func(c *gin.Context) { contact.Update(c, d) })

		// DELETE /api/contacts/:id	-> Deletes a contact owned by the caller
		ct.DELETE("/:id", func(c *gin.Context) { contact.Delete(c, d) })
	}

	d.Tasks.StartWorkerPool()

	// Unconfirmed accounts have a week, so checking daily is plenty
	service.AccountCleanup(time.Hour*24, gormDB)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	var level zapcore.Level
	if err := level.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
