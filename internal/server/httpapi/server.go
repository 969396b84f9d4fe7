// Package httpapi exposes the server's public HTTP surface: account auth,
// the folder/file API behind bearer tokens, and the unauthenticated
// share-redemption endpoints.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/config"
	"github.com/vaultbox/vaultbox/internal/server/ratelimit"
	"github.com/vaultbox/vaultbox/internal/server/services"
)

// Server wires services into a gin router.
type Server struct {
	router    *gin.Engine
	logger    logging.Logger
	jwtSecret []byte
	maxUpload int64

	accounts  *services.AccountService
	directory *services.DirectoryService
	share     *services.ShareService
	gateway   *services.GatewayService
	stats     *services.StatsService
}

// NewServer builds the router with all routes registered. The limiter
// guards only the public share endpoints; authenticated traffic is not rate
// limited.
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	accounts *services.AccountService,
	directory *services.DirectoryService,
	share *services.ShareService,
	gateway *services.GatewayService,
	stats *services.StatsService,
	limiter ratelimit.Limiter,
) *Server {
	s := &Server{
		router:    gin.New(),
		logger:    logger,
		jwtSecret: []byte(cfg.SecretKey),
		maxUpload: cfg.MaxUploadBytes,
		accounts:  accounts,
		directory: directory,
		share:     share,
		gateway:   gateway,
		stats:     stats,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogMiddleware())

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", s.authMiddleware())
	authed.GET("/folders/content", s.handleListChildren)
	authed.POST("/folders/create", s.handleCreateFolder)
	authed.POST("/folders/:id/move", s.handleMoveFolder)
	authed.DELETE("/folders/:id", s.handleDeleteFolder)
	authed.POST("/upload", s.handleUpload)
	authed.GET("/files", s.handleListFiles)
	authed.GET("/files/:id/download", s.handleDownload)
	authed.DELETE("/files/:id", s.handleDeleteFile)
	authed.GET("/files/stats", s.handleStats)
	authed.POST("/share/create", s.handleCreateShare)

	public := api.Group("", s.rateLimitMiddleware(limiter))
	public.GET("/share/:token/info", s.handleShareInfo)
	public.POST("/share/:token/download", s.handleShareDownload)

	return s
}

// Handler returns the underlying http.Handler for serving or testing.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
