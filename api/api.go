// Package api defines the contracts shared between cinder's packages.
package api

import (
	"context"
	"io"
	"time"

	"github.com/cinderlog/cinder/config"
	"github.com/cinderlog/cinder/core"
	"github.com/cinderlog/cinder/formatter"
	"github.com/cinderlog/cinder/hook"
	"github.com/cinderlog/cinder/metric"
	"github.com/cinderlog/cinder/sink"
)

// LoggerInterface is the main logging contract.
type LoggerInterface interface {
	Trace(args ...interface{})
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Critical(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})

	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Panicf(format string, args ...interface{})

	TraceC(ctx context.Context, args ...interface{})
	DebugC(ctx context.Context, args ...interface{})
	InfoC(ctx context.Context, args ...interface{})
	WarnC(ctx context.Context, args ...interface{})
	ErrorC(ctx context.Context, args ...interface{})
	CriticalC(ctx context.Context, args ...interface{})
	FatalC(ctx context.Context, args ...interface{})
	PanicC(ctx context.Context, args ...interface{})

	TracefC(ctx context.Context, format string, args ...interface{})
	DebugfC(ctx context.Context, format string, args ...interface{})
	InfofC(ctx context.Context, format string, args ...interface{})
	WarnfC(ctx context.Context, format string, args ...interface{})
	ErrorfC(ctx context.Context, format string, args ...interface{})
	CriticalfC(ctx context.Context, format string, args ...interface{})
	FatalfC(ctx context.Context, format string, args ...interface{})
	PanicfC(ctx context.Context, format string, args ...interface{})

	AddSink(s sink.Sink)
	RemoveSink(s sink.Sink)
	Flush()

	Close()
}

// WriterInterface is the contract for log writing components.
type WriterInterface interface {
	io.WriteCloser
}

// FormatterInterface is the contract for log formatting components.
type FormatterInterface interface {
	formatter.Formatter
}

// HookInterface is the contract for hook components.
type HookInterface interface {
	hook.Hook
}

// ConfigInterface is the contract for logger configuration.
type ConfigInterface interface {
	GetLevel() core.Level
	GetOutput() io.Writer
	GetFormatter() FormatterInterface
	GetTimestampFormat() string
	GetRotationConfig() *config.RotationConfig
}

// MetricsInterface is the contract for metrics collectors.
type MetricsInterface interface {
	metric.MetricsCollector
}

// EntryBuilderInterface is the contract for log entry construction.
type EntryBuilderInterface interface {
	BuildEntry(ctx context.Context, level core.Level, message []byte, fields map[string]interface{}) *core.LogEntry
}

// ProcessorInterface is the contract for log processing.
type ProcessorInterface interface {
	ProcessLog(ctx context.Context, level core.Level, message []byte, fields map[string]interface{}) error
}

// PoolInterface is the contract for pool management.
type PoolInterface interface {
	GetEntryFromPool() *core.LogEntry
	PutEntryToPool(entry *core.LogEntry)
	GetBufferFromPool() interface{}
	PutBufferToPool(buf interface{})
}

// ClockInterface is the contract for time management.
type ClockInterface interface {
	Now() time.Time
	Stop()
}
