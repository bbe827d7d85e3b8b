package config

import "time"

// DefaultConfig returns the configuration used when no config file is present.
// The voice pool mirrors the stock ElevenLabs lineup so automatic assignment
// works out of the box; IDs can be overridden per deployment.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "podcastforge-server",
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8080,
		},
		MCP: MCPConfig{
			Enabled: false,
		},
		ScriptGen: ScriptGenConfig{
			Type:        "openai",
			ModelName:   "gpt-4o-mini",
			Temperature: 0.8,
			MaxTokens:   4096,
		},
		TTS: map[string]TTSConfig{
			"ElevenLabsTTS": {
				Type:    "elevenlabs",
				Format:  "mp3",
				ModelID: "eleven_turbo_v2_5",
			},
			"EdgeTTS": {
				Type:   "edge",
				Voice:  "en-US-AriaNeural",
				Format: "mp3",
			},
		},
		Selected: SelectedConfig{
			TTS: "ElevenLabsTTS",
		},
		Voices: []VoiceInfo{
			{Name: "nova", ID: "nova", Gender: "female", Archetype: "warm_engaging", Age: "young_adult"},
			{Name: "aria", ID: "aria", Gender: "female", Archetype: "contemplative", Age: "adult"},
			{Name: "sarah", ID: "sarah", Gender: "female", Archetype: "authoritative", Age: "adult"},
			{Name: "laura", ID: "laura", Gender: "female", Archetype: "warm_engaging", Age: "middle_aged"},
			{Name: "josh", ID: "josh", Gender: "male", Archetype: "energetic", Age: "young_adult"},
			{Name: "adam", ID: "adam", Gender: "male", Archetype: "analytical", Age: "adult"},
			{Name: "brian", ID: "brian", Gender: "male", Archetype: "authoritative", Age: "middle_aged"},
			{Name: "onyx", ID: "onyx", Gender: "male", Archetype: "skeptical", Age: "adult"},
			{Name: "fable", ID: "fable", Gender: "neutral", Archetype: "warm_engaging", Age: "adult"},
			{Name: "shimmer", ID: "shimmer", Gender: "female", Archetype: "contemplative", Age: "young_adult"},
		},
		Synthesis: SynthesisConfig{
			MaxConcurrent:  4,
			MaxRetries:     2,
			RetryBackoff:   500 * time.Millisecond,
			MaxBackoff:     5 * time.Second,
			RequestTimeout: 60 * time.Second,
		},
		Assembly: AssemblyConfig{
			OutputDir:         "data/podcasts",
			SilenceGapSeconds: 0.5,
			Normalize:         true,
			FFmpegPath:        "ffmpeg",
			Bitrate:           "128k",
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        30 * time.Minute,
			MaxEntries: 500,
		},
		Storage: StorageConfig{
			Enabled: true,
			DSN:     "data/podcastforge.db",
		},
	}
}
