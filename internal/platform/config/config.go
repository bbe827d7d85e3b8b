package config

import "time"

type Config struct {
	Server    ServerConfig         `yaml:"server"`
	Log       LogConfig            `yaml:"log"`
	Web       WebConfig            `yaml:"web"`
	ScriptGen ScriptGenConfig      `yaml:"script_generation"`
	TTS       map[string]TTSConfig `yaml:"TTS"`
	Selected  SelectedConfig       `yaml:"selected_module"`
	Voices    []VoiceInfo          `yaml:"voices"`
	Synthesis SynthesisConfig      `yaml:"synthesis"`
	Assembly  AssemblyConfig       `yaml:"assembly"`
	Cache     CacheConfig          `yaml:"cache"`
	Storage   StorageConfig        `yaml:"storage"`
	MCP       MCPConfig            `yaml:"mcp"`
}

type ServerConfig struct {
	Name string `yaml:"name"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ScriptGenConfig struct {
	Type        string  `yaml:"type"`
	ModelName   string  `yaml:"model_name"`
	BaseURL     string  `yaml:"url"`
	APIKey      string  `yaml:"api_key"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type TTSConfig struct {
	Type    string `yaml:"type"`
	Voice   string `yaml:"voice"`
	Format  string `yaml:"format"`
	APIKey  string `yaml:"api_key"`
	ModelID string `yaml:"model_id"`
	BaseURL string `yaml:"url"`
}

type SelectedConfig struct {
	TTS string `yaml:"TTS"`
}

// VoiceInfo describes one entry of the candidate voice pool.
type VoiceInfo struct {
	Name      string `yaml:"name"`
	ID        string `yaml:"id"`
	Gender    string `yaml:"gender"`
	Archetype string `yaml:"archetype"`
	Age       string `yaml:"age"`
}

type SynthesisConfig struct {
	MaxConcurrent  int           `yaml:"max_concurrent"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Seed           int64         `yaml:"seed"`
}

type AssemblyConfig struct {
	OutputDir         string  `yaml:"output_dir"`
	SilenceGapSeconds float64 `yaml:"silence_gap_seconds"`
	Normalize         bool    `yaml:"normalize"`
	FFmpegPath        string  `yaml:"ffmpeg_path"`
	Bitrate           string  `yaml:"bitrate"`
}

type CacheConfig struct {
	Driver     string           `yaml:"driver"`
	TTL        time.Duration    `yaml:"ttl"`
	MaxEntries int              `yaml:"max_entries"`
	Redis      RedisCacheConfig `yaml:"redis"`
}

type RedisCacheConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}
