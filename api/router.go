// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"streamcart/auth-api/config"
	"streamcart/auth-api/db"
	"streamcart/auth-api/internal/access"
	"streamcart/auth-api/internal/auth"
	"streamcart/auth-api/internal/service"
	"streamcart/auth-api/pkg/cookie"
	"streamcart/auth-api/pkg/middleware"
	"streamcart/auth-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Auth   *auth.Service
	Jar    *cookie.Jar

	started time.Time
}

func NewRouter() (*API, error) {
	a := &API{started: time.Now()}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database

	makeLogger()

	a.Jar = cookie.NewJar(
		viper.GetString("auth.secret"),
		viper.GetString("host.domain"),
		config.Production(),
	)

	var mail auth.OtpSender
	if viper.GetBool("mail.enabled") {
		mail = service.NewMailer()
	}

	a.Auth = auth.NewService(database, security.New(), a.Jar, mail)

	service.TokenCleanup(time.Hour, database)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("cors.origins"),
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
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
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	session := middleware.NewSessionMiddleware(a.Auth)
	authLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// GET /api/health		-> Uptime and store reachability
		main.GET("/health", cacheFor(10), a.Health)

		// HEAD /api/validate		-> Validates the session cookie
		main.HEAD("/validate", session, a.Validate)
	}

	authGroup := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup	-> Creates an unverified account and issues an OTP
		authGroup.POST("/signup", authLimiter, a.AuthSignup)

		// POST /api/auth/otp		-> Redeems the OTP for the pending signup
		authGroup.POST("/otp", authLimiter, a.AuthOtp)

		// POST /api/auth/resend	-> Reissues the OTP, cooldown applies
		authGroup.POST("/resend", authLimiter, a.AuthResend)

		// POST /api/auth/login 	-> Logs in a user and opens a session
		authGroup.POST("/login", authLimiter, a.AuthLogin)

		// POST /api/auth/signout	-> Deletes the current session
		authGroup.POST("/signout", a.AuthSignout)
	}

	users := main.Group("/users", session)
	{
		// GET /api/users/me		-> Returns the logged in user without the password hash
		users.GET("/me", a.UserMe)
	}

	admin := main.Group("/admin", session)
	{
		// GET /api/admin/users			-> Lists accounts, needs readUser
		admin.GET("/users",
			middleware.RequirePermission(a.Auth, access.Read, access.User),
			a.AdminListUsers)

		// DELETE /api/admin/users/:id/sessions	-> Force sign-out, needs deleteUser
		admin.DELETE("/users/:id/sessions",
			middleware.RequirePermission(a.Auth, access.Delete, access.User),
			a.AdminRevokeSessions)
	}

	return a, nil
}

func makeLogger() {
	var cfg zap.Config

	if config.Production() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(gray + t.Format("15:04:05.000") + reset)
		}
		cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(gray + ec.TrimmedPath() + reset)
		}
		cfg.DisableStacktrace = true
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
