// Package cinder ties together the dispatcher, sinks, formatters and the
// pattern analyzer behind a fluent builder and an optional process-wide
// default logger handle.
package cinder

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/cinderlog/cinder/api"
	"github.com/cinderlog/cinder/config"
	"github.com/cinderlog/cinder/core"
	"github.com/cinderlog/cinder/errors"
	"github.com/cinderlog/cinder/formatter"
	"github.com/cinderlog/cinder/logger"
	"github.com/cinderlog/cinder/pattern"
	"github.com/cinderlog/cinder/sink"
)

func openOrCreate(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// New constructs a Logger from an already-built LoggerConfig.
func New(cfg logger.LoggerConfig) api.LoggerInterface {
	return logger.New(cfg)
}

// NewDefaultLogger constructs a Logger with the package's standard defaults.
func NewDefaultLogger() api.LoggerInterface {
	return logger.NewDefaultLogger()
}

// Builder fluently assembles a logger.LoggerConfig. Each setter returns
// the builder so calls can be chained; Build validates the accumulated
// configuration and fails closed on contradictions.
type Builder struct {
	cfg      logger.LoggerConfig
	filePath string
}

// NewBuilder starts from the package defaults so a caller only needs to
// override what matters for their use case.
func NewBuilder() *Builder {
	return &Builder{
		cfg: logger.LoggerConfig{
			Level:           core.INFO,
			CallerDepth:     logger.DEFAULT_CALLER_DEPTH,
			TimestampFormat: logger.DEFAULT_TIMESTAMP_FORMAT,
			BufferSize:      logger.DEFAULT_BUFFER_SIZE,
			FlushInterval:   logger.DEFAULT_FLUSH_INTERVAL,
		},
	}
}

func (b *Builder) Level(level core.Level) *Builder {
	b.cfg.Level = level
	return b
}

func (b *Builder) Output(w io.Writer) *Builder {
	b.cfg.Output = w
	return b
}

func (b *Builder) ErrorOutput(w io.Writer) *Builder {
	b.cfg.ErrorOutput = w
	return b
}

func (b *Builder) Formatter(f formatter.Formatter) *Builder {
	b.cfg.Formatter = f
	return b
}

func (b *Builder) EnableColors(enabled bool) *Builder {
	b.cfg.EnableColors = enabled
	return b
}

func (b *Builder) ShowCaller(enabled bool) *Builder {
	b.cfg.ShowCaller = enabled
	return b
}

func (b *Builder) FilePath(path string) *Builder {
	b.filePath = path
	return b
}

func (b *Builder) EnableRotation(maxSize int64, maxBackups int) *Builder {
	b.cfg.EnableRotation = true
	b.cfg.RotationConfig = &config.RotationConfig{
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}
	return b
}

func (b *Builder) AsyncMode(enabled bool, bufferSize int) *Builder {
	b.cfg.AsyncLogging = enabled
	b.cfg.AsyncLogChannelBufferSize = bufferSize
	return b
}

func (b *Builder) FlushInterval(d time.Duration) *Builder {
	b.cfg.FlushInterval = d
	return b
}

// WithSink registers an additional sink the built logger fans out to
// alongside its primary output.
func (b *Builder) WithSink(s sink.Sink) *Builder {
	b.cfg.Sinks = append(b.cfg.Sinks, s)
	return b
}

// WithPatternAnalysis turns on the embedded pattern analyzer for the built
// logger, using cfg for its tuning. Passing a zero-value Config falls back
// to pattern.DefaultConfig().
func (b *Builder) WithPatternAnalysis(cfg pattern.Config) *Builder {
	b.cfg.EnablePatternAnalysis = true
	b.cfg.PatternConfig = cfg
	return b
}

// Build validates the accumulated options and constructs the Logger. It
// raises errors.ErrInvalidConfiguration for contradictory combinations —
// e.g. rotation enabled without a file path.
func (b *Builder) Build() (api.LoggerInterface, error) {
	if b.cfg.EnableRotation && b.filePath == "" {
		return nil, errors.NewInvalidConfigurationError("rotation enabled without a file path")
	}
	if b.filePath != "" {
		f, err := openOrCreate(b.filePath)
		if err != nil {
			return nil, errors.NewInvalidConfigurationError("cannot open file path: " + err.Error())
		}
		b.cfg.Output = f
	}
	return logger.New(b.cfg), nil
}

// --- process-wide optional default logger handle ---

var (
	defaultMu     sync.Mutex
	defaultLogger api.LoggerInterface
)

// Init installs l as the process-wide default logger. It fails with
// errors.ErrAlreadyInitialized if a default logger is already installed.
func Init(l api.LoggerInterface) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		return errors.ErrAlreadyInitialized
	}
	defaultLogger = l
	return nil
}

// InitWithConfig builds a logger from cfg and installs it as the default.
func InitWithConfig(cfg logger.LoggerConfig) error {
	return Init(logger.New(cfg))
}

// Deinit clears the default logger handle, closing the logger it held.
func Deinit() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		defaultLogger.Close()
		defaultLogger = nil
	}
}

// IsInitialized reports whether a default logger is currently installed.
func IsInitialized() bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger != nil
}

// GetDefaultLogger returns the installed default logger, or nil if none.
func GetDefaultLogger() api.LoggerInterface {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}
