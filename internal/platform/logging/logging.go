package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logRetentionDays = 7

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

var DefaultLogger *Logger

// Tags used by pipeline stages. Keeping them in one place makes the console
// coloring table and the call sites agree.
const (
	TagBoot  = "BOOT"
	TagParse = "PARSE"
	TagVoice = "VOICE"
	TagTTS   = "TTS"
	TagMux   = "MUX"
	TagLLM   = "LLM"
	TagHTTP  = "HTTP"
	TagMCP   = "MCP"
	TagStore = "STORE"
)

var (
	colorReset = "\x1b[0m"
	colorTime  = "\x1b[90m"
	colorDebug = "\x1b[36m"
	colorInfo  = "\x1b[32m"
	colorWarn  = "\x1b[33m"
	colorError = "\x1b[31m"

	tagColors = map[string]string{
		TagBoot:  "\x1b[96m",
		TagParse: "\x1b[94m",
		TagVoice: "\x1b[95m",
		TagTTS:   "\x1b[35m",
		TagMux:   "\x1b[92m",
		TagLLM:   "\x1b[34m",
		TagHTTP:  "\x1b[93m",
		TagMCP:   "\x1b[36m",
		TagStore: "\x1b[90m",
	}
)

// consoleHandler renders colored, tag-aware lines for the terminal while the
// JSON handler keeps the file output machine readable.
type consoleHandler struct {
	writer io.Writer
	level  slog.Level
	mu     sync.Mutex
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")

	var levelColor, levelStr string
	switch r.Level {
	case slog.LevelDebug:
		levelColor, levelStr = colorDebug, "DEBUG"
	case slog.LevelWarn:
		levelColor, levelStr = colorWarn, "WARN"
	case slog.LevelError:
		levelColor, levelStr = colorError, "ERROR"
	default:
		levelColor, levelStr = colorInfo, "INFO"
	}

	msg := r.Message
	var output string
	if tagColor, ok := tagColors[extractTag(msg)]; ok {
		output = fmt.Sprintf("%s[%s]%s %s%s%s",
			colorTime, timeStr, colorReset,
			tagColor, msg, colorReset)
	} else {
		output = fmt.Sprintf("%s[%s]%s %s[%s]%s %s",
			colorTime, timeStr, colorReset,
			levelColor, levelStr, colorReset,
			msg)
	}

	if r.NumAttrs() > 0 {
		output += " {"
		r.Attrs(func(a slog.Attr) bool {
			output += fmt.Sprintf(" %s=%v", a.Key, a.Value)
			return true
		})
		output += " }"
	}
	output += "\n"

	_, err := h.writer.Write([]byte(output))
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(string) slog.Handler      { return h }

func extractTag(msg string) string {
	if !strings.HasPrefix(msg, "[") {
		return ""
	}
	end := strings.IndexByte(msg, ']')
	if end < 0 {
		return ""
	}
	return msg[1:end]
}

// Logger writes JSON records to a daily-rotated file and colored text to the
// console.
type Logger struct {
	config      Config
	jsonLogger  *slog.Logger
	textLogger  *slog.Logger
	logFile     *os.File
	currentDate string
	mu          sync.RWMutex
	ticker      *time.Ticker
	stopCh      chan struct{}
	stopOnce    sync.Once
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to cfg.Dir/cfg.Filename plus stdout.
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(cfg.Dir, cfg.Filename)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := parseLevel(cfg.Level)

	l := &Logger{
		config:      cfg,
		jsonLogger:  slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})),
		textLogger:  slog.New(&consoleHandler{writer: os.Stdout, level: level}),
		logFile:     file,
		currentDate: time.Now().Format("2006-01-02"),
		stopCh:      make(chan struct{}),
	}

	l.startRotationChecker()
	if DefaultLogger == nil {
		DefaultLogger = l
	}
	return l, nil
}

func (l *Logger) startRotationChecker() {
	l.ticker = time.NewTicker(time.Minute)
	go func() {
		for {
			select {
			case <-l.ticker.C:
				l.checkAndRotate()
			case <-l.stopCh:
				return
			}
		}
	}()
}

func (l *Logger) checkAndRotate() {
	today := time.Now().Format("2006-01-02")
	if today != l.currentDate {
		l.rotateLogFile(today)
		l.cleanOldLogs()
	}
}

func (l *Logger) rotateLogFile(newDate string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		l.logFile.Close()
	}

	logDir := l.config.Dir
	currentLogPath := filepath.Join(logDir, l.config.Filename)

	base := strings.TrimSuffix(l.config.Filename, filepath.Ext(l.config.Filename))
	ext := filepath.Ext(l.config.Filename)
	archivedLogPath := filepath.Join(logDir, fmt.Sprintf("%s-%s%s", base, l.currentDate, ext))

	if _, err := os.Stat(currentLogPath); err == nil {
		if err := os.Rename(currentLogPath, archivedLogPath); err != nil {
			l.textLogger.Error("rotate log file failed", slog.String("error", err.Error()))
		}
	}

	file, err := os.OpenFile(currentLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.textLogger.Error("create new log file failed", slog.String("error", err.Error()))
		return
	}

	l.logFile = file
	l.currentDate = newDate
	l.jsonLogger = slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: parseLevel(l.config.Level),
	}))
}

func (l *Logger) cleanOldLogs() {
	entries, err := os.ReadDir(l.config.Dir)
	if err != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
	base := strings.TrimSuffix(l.config.Filename, filepath.Ext(l.config.Filename))
	ext := filepath.Ext(l.config.Filename)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, base+"-") || !strings.HasSuffix(name, ext) {
			continue
		}
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, base+"-"), ext)
		fileDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(l.config.Dir, name))
		}
	}
}

// Close stops rotation and closes the log file.
func (l *Logger) Close() error {
	var err error
	l.stopOnce.Do(func() {
		if l.ticker != nil {
			l.ticker.Stop()
		}
		close(l.stopCh)
		if l.logFile != nil {
			err = l.logFile.Close()
		}
	})
	return err
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}

	ctx := context.Background()
	l.jsonLogger.Log(ctx, level, msg, args...)
	l.textLogger.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func formatTag(tag, msg string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.HasPrefix(msg, "[") {
		return msg
	}
	return fmt.Sprintf("[%s] %s", tag, msg)
}

// DebugTag logs a debug message prefixed with a stage tag, e.g. "[TTS] ...".
func (l *Logger) DebugTag(tag, msg string, args ...any) {
	if l == nil {
		return
	}
	l.Debug(formatTag(tag, msg), args...)
}

func (l *Logger) InfoTag(tag, msg string, args ...any) {
	if l == nil {
		return
	}
	l.Info(formatTag(tag, msg), args...)
}

func (l *Logger) WarnTag(tag, msg string, args ...any) {
	if l == nil {
		return
	}
	l.Warn(formatTag(tag, msg), args...)
}

func (l *Logger) ErrorTag(tag, msg string, args ...any) {
	if l == nil {
		return
	}
	l.Error(formatTag(tag, msg), args...)
}

// Slog exposes the console logger for integrations that want a *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textLogger
}
