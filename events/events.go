// Package events carries pipeline notifications over Kafka.
package events

import "time"

// Default topic names.
const (
	TopicScriptGenerated = "newscast.script.generated"
	TopicScriptConsumed  = "newscast.script.consumed"
)

// ScriptGenerated is published after the daily job saved a script.
type ScriptGenerated struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	DocumentIDs []string  `json:"document_ids"`
	ScriptKey   string    `json:"script_key"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScriptConsumed is published by a downstream consumer (audio, video) once it has
// used a script. Its documents can then be archived.
type ScriptConsumed struct {
	Date        string   `json:"date"`
	DocumentIDs []string `json:"document_ids"`
	Consumer    string   `json:"consumer,omitempty"`
}
