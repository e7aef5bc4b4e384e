// Package httpapi implements the HTTP surface (C9): gin routing, request
// decoding, pagination/error enveloping, and the permissive CORS policy
// original_source/shortener-server/src/router.rs applies via
// CorsLayer::permissive(). Route table and auth-scheme-per-route follow
// router.rs's AppState/route wiring, widened from the teacher's bare
// net/http mux in internal/handler/handler.go to gin per SPEC_FULL.md §1.1.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/auth"
	"github.com/koopa0/shortener/internal/historysvc"
	"github.com/koopa0/shortener/internal/linksvc"
	"github.com/koopa0/shortener/internal/redirectsvc"
	"go.uber.org/zap"
)

// Server wires the business-logic services into gin handlers.
type Server struct {
	links           *linksvc.Service
	history         *historysvc.Service
	redirects       *redirectsvc.Pipeline
	auth            *auth.Gate
	logger          *zap.Logger
	trustedPlatform string
	engine          *gin.Engine
}

// New builds a Server with its route table attached. trustedPlatform, when
// non-empty, names the header gin's ClientIP() trusts over the direct TCP
// peer (SPEC_FULL.md §6's "trusted platform header", for use behind a
// reverse proxy that sets it).
func New(links *linksvc.Service, history *historysvc.Service, redirects *redirectsvc.Pipeline, gate *auth.Gate, logger *zap.Logger, trustedPlatform string) *Server {
	s := &Server{links: links, history: history, redirects: redirects, auth: gate, logger: logger, trustedPlatform: trustedPlatform}
	s.engine = s.newEngine()
	return s
}

func (s *Server) newEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.TrustedPlatform = s.trustedPlatform
	r.Use(requestLogger(s.logger), recovery(s.logger), permissiveCORS)

	r.GET("/:code", s.redirect)
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.POST("/account/login", s.login)

		admin := api.Group("")
		admin.Use(adminAuth(s.auth))
		admin.POST("/account/logout", s.logout)
		admin.GET("/users/current", s.currentUser)

		admin.POST("/shortens", s.createLink)
		admin.GET("/shortens", s.listLinks)
		admin.GET("/shortens/:code", s.getLink)
		admin.PUT("/shortens/:code", s.updateLink)
		admin.DELETE("/shortens/:code", s.deleteLink)
		admin.POST("/shortens/batch-delete", s.batchDeleteLinks)

		admin.GET("/histories", s.listHistories)
		admin.POST("/histories/batch-delete", s.batchDeleteHistories)
	}

	return r
}

// permissiveCORS mirrors original_source's tower_http CorsLayer::permissive()
// in spirit: any origin ("*"), the methods the route table uses, any
// header, no credentials.
func permissiveCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "*")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// Handler returns the http.Handler to mount on an *http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
