package model

// ================ Config ================

// EngineConfig carries the tunables of the conversation engine.
type EngineConfig struct {
	HistoryCapacity int    `envconfig:"HISTORY_CAPACITY" default:"10"`
	SuggestionLimit int    `envconfig:"SUGGESTION_LIMIT" default:"3"`
	TranscriptTTL   string `envconfig:"TRANSCRIPT_TTL" default:"24h"`
}

// ServerConfig carries the HTTP transport settings.
type ServerConfig struct {
	Addr           string `envconfig:"SERVER_ADDR" default:":8000"`
	MaxSuggestions int    `envconfig:"AUTOCOMPLETE_LIMIT" default:"8"`
}
