package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newscast/types"
)

// RegisterScriptRoutes registers the script generation endpoint.
func RegisterScriptRoutes(g *gin.RouterGroup, gen ScriptGenerator) {
	g.POST("/generate-script", func(c *gin.Context) {
		handleGenerateScript(c, gen)
	})
}

// GenerateScriptRequest carries the three curated items.
type GenerateScriptRequest struct {
	News []types.ScriptItem `json:"news"`
}

func handleGenerateScript(c *gin.Context, gen ScriptGenerator) {
	var req GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	script, err := gen.Generate(c.Request.Context(), req.News)
	if err != nil {
		respondError(c, "failed to generate script", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"script": script})
}
