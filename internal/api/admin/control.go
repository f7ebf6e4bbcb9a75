package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/ZJUSCT/resolver/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) getState(c *gin.Context) {
	util.Success(c, h.session.View(), "State retrieved")
}

func (h *Handler) getProblems(c *gin.Context) {
	util.Success(c, h.session.Problems(), "Problems retrieved")
}

// step performs one reveal action. The optional body {"choice": n} picks
// the n-th pending submission of the marked user.
func (h *Handler) step(c *gin.Context) {
	var req struct {
		Choice *int `json:"choice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	view, cont, err := h.session.Step(req.Choice)
	data := gin.H{"continues": cont, "view": view}
	if errors.Is(err, resolver.ErrInvalidStepChoice) {
		util.SuccessWithWarning(c, data, "Step ignored", err)
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	if !cont {
		util.Success(c, data, "Ceremony finished")
		return
	}
	util.Success(c, data, "Step applied")
}

func (h *Handler) rollback(c *gin.Context) {
	view, ok := h.session.Rollback()
	if !ok {
		util.Error(c, http.StatusConflict, "nothing to roll back")
		return
	}
	util.Success(c, view, "Rolled back")
}

func (h *Handler) reload(c *gin.Context) {
	zap.S().Info("starting reload process...")
	view, err := h.session.Reload(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to reload contest: %w", err))
		return
	}
	util.Success(c, gin.H{
		"rows":     len(view.Rows),
		"problems": len(view.Problems),
	}, "Reload successful")
}
