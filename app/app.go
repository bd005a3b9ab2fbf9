package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"newscast/api"
	"newscast/config"
	"newscast/curation"
	"newscast/deduplication"
	"newscast/generator"
	"newscast/logger"
	"newscast/rssfeeds"
	"newscast/store"
)

const (
	sessionIdleTimeout = 30 * time.Minute
	sessionSweepEvery  = time.Minute
)

// CreateApp creates the fx application for the API server
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),
		fx.Provide(logger.NewLogger),
		fx.Provide(provideStore),
		fx.Provide(provideLinkFilter),
		fx.Provide(NewCollector),
		fx.Provide(NewGenerator),
		fx.Provide(curation.NewDashboard),
		fx.Provide(curation.NewSessions),
		fx.Provide(newRouter),
		fx.Invoke(registerHTTPServer),
		fx.Invoke(registerSessionSweeper),
	)
}

func provideStore(lc fx.Lifecycle, cfg *config.DatabaseConfig, log zerolog.Logger) (store.DocumentStore, error) {
	st, err := store.New(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			CloseStore(st, log)
			return nil
		},
	})
	return st, nil
}

func provideLinkFilter(lc fx.Lifecycle, cfg *config.RedisConfig, log zerolog.Logger) deduplication.LinkFilter {
	filter := deduplication.NewLinkFilter(cfg, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return filter.Close() },
	})
	return filter
}

type routerParams struct {
	fx.In

	Dashboard *curation.Dashboard
	Sessions  *curation.Sessions
	Generator *generator.Generator
	Collector *rssfeeds.Collector
	Auth      *config.AuthConfig
	Logging   *config.LoggingConfig
	Log       zerolog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	if !strings.EqualFold(p.Logging.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	if len(p.Auth.Tokens) == 0 {
		p.Log.Warn().Msg("⚠️  API_TOKENS is empty; every authenticated route will return 401")
	}
	return api.NewRouter(api.Deps{
		Dashboard: p.Dashboard,
		Sessions:  p.Sessions,
		Generator: p.Generator,
		Collector: p.Collector,
		Tokens:    p.Auth.Tokens,
		Log:       p.Log,
	})
}

func registerHTTPServer(lc fx.Lifecycle, cfg *config.ServerConfig, router *gin.Engine, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				log.Error().Err(err).Str("addr", srv.Addr).Msg("failed to listen")
				return err
			}
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("🚀 API server started")
				if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("API server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping API server...")
			return srv.Shutdown(ctx)
		},
	})
}

func registerSessionSweeper(lc fx.Lifecycle, sessions *curation.Sessions, log zerolog.Logger) {
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sessionSweepEvery)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := sessions.Sweep(sessionIdleTimeout); n > 0 {
							log.Info().Int("dropped", n).Msg("Idle sessions dropped")
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			return nil
		},
	})
}
