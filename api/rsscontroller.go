package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const refreshTimeout = 10 * time.Minute

type rssController struct {
	collector FeedCollector
	running   atomic.Bool
	log       zerolog.Logger
}

// RegisterRSSRoutes registers RSS-related endpoints.
func RegisterRSSRoutes(g *gin.RouterGroup, collector FeedCollector, log zerolog.Logger) {
	ctl := &rssController{collector: collector, log: log}
	g.POST("/rss/refresh", ctl.refresh)
}

// refresh starts a collection run in the background and returns 202 Accepted
// immediately. Only one run is active at a time.
func (ctl *rssController) refresh(c *gin.Context) {
	if !ctl.running.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "refresh already in progress"})
		return
	}

	go func() {
		defer ctl.running.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		report, err := ctl.collector.Run(ctx)
		if err != nil {
			ctl.log.Error().Err(err).Msg("❌ RSS refresh failed")
			return
		}
		ctl.log.Info().
			Int("fetched", report.Fetched).
			Int("inserted", report.Inserted).
			Int("skipped", report.Skipped).
			Msg("✅ RSS refresh finished")
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}
