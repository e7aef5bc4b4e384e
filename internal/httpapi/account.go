// Account handlers, grounded on
// original_source/shortener-server/src/handlers/account.rs's
// login/logout/current_user shape, reimplemented over internal/auth's
// JWT+jti gate instead of the original's process-global token map.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Auto     bool   `json:"auto"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type currentUserResponse struct {
	Name string `json:"name"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{ErrCode: "INVALID_REQUEST", ErrInfo: err.Error()})
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (s *Server) logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	s.auth.Logout(token)
	c.Status(http.StatusNoContent)
}

func (s *Server) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUserResponse{Name: currentUser(c)})
}
