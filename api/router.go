// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"stashbox/drive-api/db"
	"stashbox/drive-api/internal/service"
	"stashbox/drive-api/pkg/middleware"
	"stashbox/drive-api/pkg/security"
	"stashbox/drive-api/storage"

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

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Hasher *security.PasswordHasher
	Store  storage.Storage
}

func NewRouter() (*API, error) {
	a := &API{
		Hasher: security.New(),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	store, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage, %w", err)
	}
	a.Store = store

	a.setupRouter()

	service.SessionCleanup(time.Duration(viper.GetInt("session.cleanup_minutes"))*time.Minute, db)

	return a, nil
}

func (a *API) setupRouter() {
	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
	a.Router.MaxMultipartMemory = 5 << 20

	session := middleware.RequireSession(a.DB)
	optionalSession := middleware.OptionalSession(a.DB)
	credsLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("ratelimit.rps"),
		Burst:             viper.GetInt("ratelimit.burst"),
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	// HEAD /heartbeat 			-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// GET / 				-> Landing page
	router.GET("/", a.Home)

	// GET+POST /login 			-> Login form / session creation
	router.GET("/login", a.LoginPage)
	router.POST("/login", credsLimiter, middleware.BodySizeLimiter(1<<20), a.UserLogin)

	// GET+POST /register 			-> Registration form / new account
	router.GET("/register", a.RegisterPage)
	router.POST("/register", credsLimiter, middleware.BodySizeLimiter(1<<20), a.UserRegister)

	// POST /logout 			-> Ends the current session
	router.POST("/logout", session, a.UserLogout)

	// GET /userPage 			-> Root listing of the owner's files and folders
	router.GET("/userPage", session, a.UserPage)

	// POST /create-card[/:folderId] 	-> Uploads a file, optionally into a folder
	router.POST("/create-card", session, middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)
	router.POST("/create-card/:folderId", session, middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)

	// POST /create-folder[/:folderId] 	-> Creates a folder, optionally nested
	router.POST("/create-folder", session, a.FolderCreate)
	router.POST("/create-folder/:folderId", session, a.FolderCreate)

	folders := router.Group("/folders", session)
	{
		// GET /folders[/:folderId] 	-> Lists a folder's direct contents
		folders.GET("", a.UserPage)
		folders.GET("/:folderId", a.FolderContents)

		// GET+POST /folders/edit/:folderId 	-> Rename form / rename
		folders.GET("/edit/:folderId", a.FolderEditPage)
		folders.POST("/edit/:folderId", a.FolderEdit)

		// POST /folders/delete/:folderId 	-> Deletes a folder and its contents
		folders.POST("/delete/:folderId", a.FolderDelete)
	}

	files := router.Group("/files")
	{
		// GET /files/:fileId 			-> File metadata, shared or owned
		files.GET("/:fileId", optionalSession, a.FileInfo)

		// POST /files/download/:fileId 	-> Streams the blob, shared or owned
		files.POST("/download/:fileId", optionalSession, a.FileDownload)

		// GET+POST /files/edit/:fileId 	-> Edit form / rename and share settings
		files.GET("/edit/:fileId", session, a.FileEditPage)
		files.POST("/edit/:fileId", session, a.FileEdit)

		// POST /files/delete/:fileId 		-> Deletes a file and its blob
		files.POST("/delete/:fileId", session, a.FileDelete)
	}
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

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
