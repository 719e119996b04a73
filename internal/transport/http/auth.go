package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// login 管理员登录，成功后签发 Bearer 令牌。
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	if !h.authenticator.Authenticate(req.Username, req.Password) {
		if h.metrics != nil {
			h.metrics.RecordLoginAttempt(false)
		}
		h.log.Warn("admin login failed",
			zap.String("username", req.Username),
			zap.String("ip", c.ClientIP()),
		)
		Unauthorized(c, MsgInvalidCredentials)
		return
	}

	token, err := h.jwtManager.Generate(req.Username)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err))
		InternalError(c, MsgInternalError)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoginAttempt(true)
	}
	h.log.Info("admin logged in",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
