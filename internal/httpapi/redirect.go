package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/redirectsvc"
)

// redirect is the hot path: resolve code, redirect on an enabled link,
// record the access event regardless of whether the redirect happened
// (a disabled link still counts as a click, per SPEC_FULL.md §4.6).
// 302 Found is used rather than a permanent redirect so every click keeps
// passing through the server and can be counted (DESIGN.md Open Question).
func (s *Server) redirect(c *gin.Context) {
	code := c.Param("code")

	link, err := s.redirects.Resolve(c.Request.Context(), code)

	req := redirectsvc.Request{
		Code:      code,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   c.GetHeader("Referer"),
	}
	if link != nil {
		s.redirects.RecordAccess(link, req)
	}

	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, link.OriginalURL)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
