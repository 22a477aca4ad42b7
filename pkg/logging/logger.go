// Package logging provides the process-wide logger used by the pow2 containers.
//
// The default logger writes to stderr through zap's development encoder. Two
// environment variables adjust it at start-up:
//
//	POW2_LOGGING_LEVEL  debug, info, warn, error, dpanic, panic or fatal (default info)
//	POW2_LOGGING_FILE   path of a rotating log file; stderr is used when empty
package logging

import (
	"errors"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Flusher is the callback that flushes buffered log entries.
type Flusher = func() error

// Level is the alias of zapcore.Level.
type Level = zapcore.Level

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = zapcore.DebugLevel
	// InfoLevel is the default logging priority.
	InfoLevel Level = zapcore.InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel Level = zapcore.WarnLevel
	// ErrorLevel logs are high-priority.
	ErrorLevel Level = zapcore.ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel Level = zapcore.FatalLevel
)

var (
	flushLogs           Flusher
	defaultLogger       Logger
	defaultLoggingLevel Level
)

// Logger is used for logging formatted messages.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

func init() {
	lvl := os.Getenv("POW2_LOGGING_LEVEL")
	if len(lvl) > 0 {
		if err := defaultLoggingLevel.UnmarshalText([]byte(lvl)); err != nil {
			panic("invalid POW2_LOGGING_LEVEL, " + err.Error())
		}
	}

	fileName := os.Getenv("POW2_LOGGING_FILE")
	if len(fileName) > 0 {
		var err error
		defaultLogger, flushLogs, err = CreateLoggerAsLocalFile(fileName, defaultLoggingLevel)
		if err != nil {
			panic("invalid POW2_LOGGING_FILE, " + err.Error())
		}
		return
	}

	var err error
	defaultLogger, flushLogs, err = createDevelopmentLogger(defaultLoggingLevel, "stderr")
	if err != nil {
		panic("failed to build the default logger, " + err.Error())
	}
}

func createDevelopmentLogger(logLevel Level, outputPaths ...string) (Logger, Flusher, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = outputPaths
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return zapLogger.Sugar(), zapLogger.Sync, nil
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// GetDefaultLogger returns the default logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// LogLevel returns the level the default logger was configured with.
func LogLevel() string {
	return defaultLoggingLevel.String()
}

// CreateLoggerAsLocalFile sets up a logger that writes to a rotating local file.
func CreateLoggerAsLocalFile(localFilePath string, logLevel Level) (logger Logger, flush Flusher, err error) {
	if len(localFilePath) == 0 {
		return nil, nil, errors.New("invalid local logger path")
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   localFilePath,
		MaxSize:    100, // megabytes
		MaxBackups: 2,
		MaxAge:     15, // days
	}

	encoder := getEncoder()
	ws := zapcore.Lock(zapcore.AddSync(lumberJackLogger))

	levelEnabler := zap.LevelEnablerFunc(func(level Level) bool {
		return level >= logLevel
	})
	core := zapcore.NewCore(encoder, ws, levelEnabler)
	zapLogger := zap.New(core, zap.AddCaller())
	logger = zapLogger.Sugar()
	flush = func() error {
		_ = zapLogger.Sync()
		return lumberJackLogger.Close()
	}
	return
}

// SetDefaultLoggerAndFlusher replaces the default logger and its flusher.
func SetDefaultLoggerAndFlusher(logger Logger, flusher Flusher) {
	defaultLogger, flushLogs = logger, flusher
}

// Cleanup flushes any buffered log entries of the default logger.
func Cleanup() {
	if flushLogs != nil {
		_ = flushLogs()
	}
}

// Debugf logs messages at DEBUG level.
func Debugf(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

// Infof logs messages at INFO level.
func Infof(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Warnf logs messages at WARN level.
func Warnf(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

// Errorf logs messages at ERROR level.
func Errorf(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}

// Fatalf logs messages at FATAL level.
func Fatalf(format string, args ...interface{}) {
	defaultLogger.Fatalf(format, args...)
}

// Printf logs messages at INFO level. It lets the default logger stand in
// wherever a Printf-style logger is expected.
type Printf func(format string, args ...interface{})

// Printf implements the Printf-style logger contract.
func (f Printf) Printf(format string, args ...interface{}) {
	f(format, args...)
}
