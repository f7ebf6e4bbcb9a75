package user

import (
	"github.com/ZJUSCT/resolver/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getState(c *gin.Context) {
	util.Success(c, h.session.View(), "State retrieved")
}

func (h *Handler) getProblems(c *gin.Context) {
	util.Success(c, h.session.Problems(), "Problems retrieved")
}
