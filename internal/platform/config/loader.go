package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".config.yaml"

// Loader reads configuration from a YAML file layered over the defaults, with
// credentials taken from the environment when the file leaves them empty.
type Loader struct {
	path      string
	useDotEnv bool
}

func NewLoader() *Loader {
	return &Loader{
		path:      defaultConfigFile,
		useDotEnv: true,
	}
}

// WithPath overrides the config file location.
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load returns the defaults overlaid with the config file (when present) and
// environment credentials.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := l.path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		path = "defaults"
	default:
		return nil, fmt.Errorf("read config file %s: %w", l.path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return &Result{Config: cfg, Path: path}, nil
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.ScriptGen.APIKey == "" {
		cfg.ScriptGen.APIKey = key
	}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		for name, tts := range cfg.TTS {
			if tts.Type == "elevenlabs" && tts.APIKey == "" {
				tts.APIKey = key
				cfg.TTS[name] = tts
			}
		}
	}
	if dsn := os.Getenv("PODCASTFORGE_DB"); dsn != "" {
		cfg.Storage.DSN = dsn
	}
}

// Validate rejects configurations the pipeline cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Selected.TTS == "" {
		return fmt.Errorf("selected_module.TTS must name a TTS provider")
	}
	if _, ok := cfg.TTS[cfg.Selected.TTS]; !ok {
		return fmt.Errorf("selected TTS provider %q not configured", cfg.Selected.TTS)
	}
	if cfg.Synthesis.MaxConcurrent <= 0 {
		return fmt.Errorf("synthesis.max_concurrent must be positive")
	}
	if cfg.Synthesis.MaxRetries < 0 {
		return fmt.Errorf("synthesis.max_retries must not be negative")
	}
	if cfg.Assembly.SilenceGapSeconds < 0 {
		return fmt.Errorf("assembly.silence_gap_seconds must not be negative")
	}
	if cfg.Assembly.OutputDir == "" {
		return fmt.Errorf("assembly.output_dir must be set")
	}
	return nil
}
