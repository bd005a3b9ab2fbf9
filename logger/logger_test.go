package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewSetsGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	log := New("error")
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected global level error, got %v", zerolog.GlobalLevel())
	}
	if e := log.Warn(); e.Enabled() {
		t.Fatalf("warn events should be disabled at error level")
	}
	if e := log.Error(); !e.Enabled() {
		t.Fatalf("error events should be enabled")
	}
}

func TestGinMiddlewareLevels(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	gin.SetMode(gin.TestMode)

	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, `"level":"info"`},
		{http.StatusNotFound, `"level":"warn"`},
		{http.StatusBadGateway, `"level":"error"`},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		r := gin.New()
		r.Use(GinMiddleware(zerolog.New(&buf)))
		r.GET("/news/:id", func(c *gin.Context) { c.Status(tc.status) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/news/42", nil))

		line := buf.String()
		if !strings.Contains(line, tc.level) {
			t.Fatalf("status %d: expected %s in %q", tc.status, tc.level, line)
		}
		if !strings.Contains(line, `"path":"/news/:id"`) {
			t.Fatalf("expected route path in %q", line)
		}
	}
}
