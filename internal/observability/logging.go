// Package observability holds the process-wide loggers.
//
// CLI commands log human-oriented diagnostics to stderr so stdout stays
// reserved for JSONL records.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the logger for CLI diagnostics. It defaults to a no-op
// logger until InitCLILogger runs, so library code paths that log are
// safe in tests.
var CLILogger = zap.NewNop()

// InitCLILogger configures CLILogger.
//
// verbose enables debug-level output. jsonFormat switches from the
// console encoder to structured JSON lines (useful when stderr is
// collected by a log shipper).
func InitCLILogger(verbose, jsonFormat bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if jsonFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	CLILogger = zap.New(core)
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	_ = CLILogger.Sync()
}
