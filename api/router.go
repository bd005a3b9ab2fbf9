package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"newscast/curation"
	"newscast/logger"
	"newscast/rssfeeds"
	"newscast/types"
)

// ScriptGenerator produces a podcast script from exactly three items.
type ScriptGenerator interface {
	Generate(ctx context.Context, items []types.ScriptItem) (*types.PodcastScript, error)
}

// FeedCollector runs one collection pass over the configured feeds.
type FeedCollector interface {
	Run(ctx context.Context) (rssfeeds.Report, error)
}

// Deps are the services the HTTP surface delegates to.
type Deps struct {
	Dashboard *curation.Dashboard
	Sessions  *curation.Sessions
	Generator ScriptGenerator
	Collector FeedCollector
	Tokens    []string
	Log       zerolog.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(deps.Log))

	RegisterHealthRoutes(r)

	g := r.Group("/api")
	g.Use(AuthRequired(deps.Tokens))
	RegisterNewsRoutes(g, deps.Dashboard)
	RegisterSessionRoutes(g, deps.Sessions)
	RegisterScriptRoutes(g, deps.Generator)
	RegisterRSSRoutes(g, deps.Collector, deps.Log)
	return r
}
