package admin

import (
	"fmt"
	"net/http"

	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/exporter"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/ZJUSCT/resolver/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getStandings(c *gin.Context) {
	standings, err := h.session.Standings(c.Param("view"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	util.Success(c, standings.Rows, "Standings retrieved")
}

// export streams the standings as a csv or xlsx download.
func (h *Handler) export(c *gin.Context) {
	typ := exporter.Type(c.DefaultQuery("format", string(exporter.CSV)))
	exp, err := exporter.New(typ)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	view := c.DefaultQuery("view", session.ViewFinal)
	standings, err := h.session.Standings(view)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	c.Header("Content-Type", typ.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="standings-%s.%s"`, view, typ))
	if err := exp.Export(standings, c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("export failed: %w", err))
	}
}

func (h *Handler) getEvents(c *gin.Context) {
	if h.db == nil {
		util.Error(c, http.StatusNotFound, "audit log is disabled")
		return
	}
	events, err := database.GetRevealEvents(h.db, h.session.ID())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, events, "Reveal events retrieved")
}
