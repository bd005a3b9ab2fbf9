package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newscast/apperrors"
	"newscast/curation"
	"newscast/types"
)

type newsController struct {
	dash *curation.Dashboard
}

// RegisterNewsRoutes registers document listing, status and delete endpoints.
func RegisterNewsRoutes(g *gin.RouterGroup, dash *curation.Dashboard) {
	ctl := &newsController{dash: dash}
	n := g.Group("/news")
	n.GET("", ctl.list)
	n.POST("/status", ctl.updateStatus)
	n.POST("/delete", ctl.delete)
}

// StatusRequest moves ids to Status ("selected" when empty).
type StatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// DeleteRequest deletes ids; Confirm must be true.
type DeleteRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

func (ctl *newsController) list(c *gin.Context) {
	docs, err := ctl.dash.ListDocuments(c.Request.Context(),
		c.DefaultQuery("status", types.FilterAll),
		c.DefaultQuery("category", types.FilterAll))
	if err != nil {
		respondError(c, "failed to list news", err)
		return
	}
	if docs == nil {
		docs = []types.NewsDocument{}
	}
	c.JSON(http.StatusOK, gin.H{"news": docs})
}

func (ctl *newsController) updateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	target, err := parseTarget(req.Status)
	if err != nil {
		respondError(c, "invalid status", err)
		return
	}
	if _, err := ctl.dash.ApplyStatusTransition(c.Request.Context(), req.IDs, target); err != nil {
		respondError(c, "failed to update status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": countUnique(req.IDs)})
}

func (ctl *newsController) delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	report, err := ctl.dash.DeleteDocuments(c.Request.Context(), req.IDs, req.Confirm)
	if err != nil {
		respondDeleteError(c, report, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": nonNil(report.Deleted)})
}

// parseTarget accepts an empty value as "selected".
func parseTarget(raw string) (types.Status, error) {
	if raw == "" {
		return types.StatusSelected, nil
	}
	st, err := types.ParseStatus(raw)
	if err != nil {
		return "", apperrors.NewValidationError("%s", err.Error())
	}
	return st, nil
}

// respondDeleteError reports a failed batch delete. A batch that removed some
// documents answers 500. The deleted and failed lists are included whenever the
// store was reached.
func respondDeleteError(c *gin.Context, report curation.DeleteReport, err error) {
	status, kind := apperrors.HTTPStatus(err)
	touched := len(report.Deleted) > 0 || len(report.Failed) > 0
	if !touched {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	msg := "failed to delete news"
	if len(report.Deleted) > 0 {
		status = http.StatusInternalServerError
		msg = "news partially deleted"
	}
	c.JSON(status, gin.H{
		"error":   msg,
		"details": err.Error(),
		"type":    kind,
		"deleted": nonNil(report.Deleted),
		"failed":  report.FailedIDs(),
	})
}

func countUnique(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
