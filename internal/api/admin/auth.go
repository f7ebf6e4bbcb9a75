package admin

import (
	"net/http"

	"github.com/ZJUSCT/resolver/internal/auth"
	"github.com/ZJUSCT/resolver/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	presenter := h.cfg.Auth.Presenter
	if presenter.Username == "" || presenter.PasswordHash == "" {
		util.Error(c, http.StatusForbidden, "presenter login is not configured")
		return
	}
	if req.Username != presenter.Username || !auth.CheckPasswordHash(req.Password, presenter.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := auth.GenerateJWT(req.Username, h.cfg.Auth.JWT.Secret, h.cfg.Auth.JWT.ExpireHours)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to generate JWT")
		return
	}
	zap.S().Infof("presenter %s logged in", req.Username)
	util.Success(c, gin.H{"token": token}, "Login successful")
}
