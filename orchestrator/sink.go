package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"newscast/config"
	"newscast/types"
)

// ScriptSink persists a generated script and returns where it went.
type ScriptSink interface {
	Save(ctx context.Context, date string, script *types.PodcastScript) (string, error)
}

// LocalSink writes indented JSON to Dir/script_YYYYMMDD.json.
type LocalSink struct {
	Dir string
}

func (l LocalSink) Save(_ context.Context, date string, script *types.PodcastScript) (string, error) {
	dir := l.Dir
	if dir == "" {
		dir = config.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode script: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf(config.ScriptFilePattern, date))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	return path, nil
}

// ObjectStore is the part of the S3 wrapper the sink needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// S3Sink uploads scripts under Prefix + "scripts/<date>.json".
type S3Sink struct {
	Objects ObjectStore
	Prefix  string
	Log     zerolog.Logger
}

// ScriptKey returns the object key for date.
func (s S3Sink) ScriptKey(date string) string {
	return s.Prefix + "scripts/" + date + ".json"
}

func (s S3Sink) Save(ctx context.Context, date string, script *types.PodcastScript) (string, error) {
	key := s.ScriptKey(date)
	data, err := json.Marshal(script)
	if err != nil {
		return "", fmt.Errorf("encode script: %w", err)
	}
	if exists, err := s.Objects.Exists(ctx, key); err == nil && exists {
		s.Log.Warn().Str("key", key).Msg("Replacing existing script object")
	}
	if err := s.Objects.Put(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
