package config

import "time"

// Curation and generation constants
const (
	// ScriptItemCount is the exact number of news items one script covers
	ScriptItemCount = 3

	// MaxUtteranceWords caps the length of a single speaker turn
	MaxUtteranceWords = 30

	// TargetWordsMin and TargetWordsMax bound the episode length the prompt asks for
	TargetWordsMin = 500
	TargetWordsMax = 650
)

// Model call parameters
const (
	LLMTemperature = 0.7
	LLMMaxTokens   = 8192
)

// Timeouts
const (
	// FeedFetchTimeout bounds a single RSS request
	FeedFetchTimeout = 30 * time.Second

	// ExtractorTimeout bounds a single readability page fetch
	ExtractorTimeout = 30 * time.Second

	// StoreOpTimeout bounds one store round trip from the one-shot commands
	StoreOpTimeout = 15 * time.Second

	// ShutdownTimeout is the grace period for HTTP and cron shutdown
	ShutdownTimeout = 10 * time.Second
)

// Directory and naming constants
const (
	// OutputDir is the default directory for generated scripts
	OutputDir = "output"

	// ScriptFilePattern is formatted with a YYYYMMDD date in Asia/Tokyo
	ScriptFilePattern = "script_%s.json"

	// TimeZone is the zone used for script dates and cron schedules
	TimeZone = "Asia/Tokyo"
)
