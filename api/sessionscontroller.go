package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"newscast/curation"
)

type sessionsController struct {
	sessions *curation.Sessions
}

// RegisterSessionRoutes registers the per-operator curation session endpoints.
func RegisterSessionRoutes(g *gin.RouterGroup, sessions *curation.Sessions) {
	ctl := &sessionsController{sessions: sessions}
	s := g.Group("/sessions")
	s.POST("", ctl.create)
	s.GET("/:id", ctl.withSession(ctl.view))
	s.DELETE("/:id", ctl.drop)
	s.PUT("/:id/filters", ctl.withSession(ctl.setFilters))
	s.POST("/:id/toggle/:docID", ctl.withSession(ctl.toggle))
	s.POST("/:id/select-all", ctl.withSession(ctl.selectAll))
	s.POST("/:id/clear", ctl.withSession(ctl.clear))
	s.POST("/:id/apply", ctl.withSession(ctl.apply))
	s.POST("/:id/delete", ctl.withSession(ctl.delete))
}

// FiltersRequest replaces a session's filters. Empty values mean "all".
type FiltersRequest struct {
	Status   string `json:"status"`
	Category string `json:"category"`
}

type sessionHandler func(c *gin.Context, s *curation.Session)

func (ctl *sessionsController) withSession(h sessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := ctl.sessions.Get(c.Param("id"))
		if err != nil {
			respondError(c, "session lookup failed", err)
			return
		}
		h(c, s)
	}
}

func (ctl *sessionsController) create(c *gin.Context) {
	s := ctl.sessions.Create()
	if err := s.Refresh(c.Request.Context()); err != nil {
		ctl.sessions.Drop(s.ID)
		respondError(c, "failed to load news", err)
		return
	}
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (ctl *sessionsController) drop(c *gin.Context) {
	ctl.sessions.Drop(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (ctl *sessionsController) view(c *gin.Context, s *curation.Session) {
	if c.Query("refresh") == "true" {
		if err := s.Refresh(c.Request.Context()); err != nil {
			respondError(c, "failed to load news", err)
			return
		}
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (ctl *sessionsController) setFilters(c *gin.Context, s *curation.Session) {
	var req FiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.SetFilters(c.Request.Context(), req.Status, req.Category); err != nil {
		respondError(c, "failed to apply filters", err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (ctl *sessionsController) toggle(c *gin.Context, s *curation.Session) {
	selected := s.Toggle(c.Param("docID"))
	c.JSON(http.StatusOK, gin.H{"selected": selected, "session": s.Snapshot()})
}

func (ctl *sessionsController) selectAll(c *gin.Context, s *curation.Session) {
	n := s.SelectAllVisible()
	c.JSON(http.StatusOK, gin.H{"count": n, "session": s.Snapshot()})
}

func (ctl *sessionsController) clear(c *gin.Context, s *curation.Session) {
	s.Clear()
	c.JSON(http.StatusOK, s.Snapshot())
}

func (ctl *sessionsController) apply(c *gin.Context, s *curation.Session) {
	var req StatusRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	target, err := parseTarget(req.Status)
	if err != nil {
		respondError(c, "invalid status", err)
		return
	}
	n, err := s.ApplySelected(c.Request.Context(), target)
	if err != nil {
		respondError(c, "failed to update status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "session": s.Snapshot()})
}

func (ctl *sessionsController) delete(c *gin.Context, s *curation.Session) {
	var req DeleteRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	report, err := s.DeleteSelected(c.Request.Context(), req.Confirm)
	if err != nil {
		respondDeleteError(c, report, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": nonNil(report.Deleted), "session": s.Snapshot()})
}

// bindOptionalJSON binds the body when there is one and leaves v zero otherwise.
func bindOptionalJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
