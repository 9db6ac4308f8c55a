package logger

import (
	"io"
	"os"
	"time"

	"movies-api/pkg/config"

	zl "github.com/rs/zerolog"
)

// log is an unexported package-level global variable that holds the logger instance
var log = newLogger(zl.New(os.Stdout).With().Timestamp().Logger())

type logger struct {
	engine *zl.Logger
}

type options struct {
	format string
	out    io.Writer
}

func newLogger(engine zl.Logger) *logger {
	return &logger{engine: &engine}
}

// InitLogger initializes the logger with configuration
func InitLogger(cfg *config.Config) {
	logLvl := getLogLevel(cfg.Log.Level)

	opts := options{
		format: cfg.Log.Format,
		out:    os.Stdout,
	}

	zl.SetGlobalLevel(logLvl)

	var engine zl.Logger
	switch opts.format {
	case ConsoleFormat:
		engine = newConsoleLogger(opts)
	default:
		setupCloudLoggingSeverity()
		engine = newGCPLogger(opts)
	}

	log = newLogger(engine)
}

// getLogLevel returns the log level based on the string input
func getLogLevel(level string) zl.Level {
	switch level {
	case DebugLevel:
		return zl.DebugLevel
	case InfoLevel:
		return zl.InfoLevel
	case WarnLevel:
		return zl.WarnLevel
	case ErrorLevel:
		return zl.ErrorLevel
	default:
		return zl.InfoLevel
	}
}

// setupCloudLoggingSeverity configures zerolog to use Cloud Logging severity levels
func setupCloudLoggingSeverity() {
	zl.LevelFieldMarshalFunc = func(l zl.Level) string {
		switch l {
		case zl.DebugLevel:
			return "DEBUG"
		case zl.InfoLevel:
			return "INFO"
		case zl.WarnLevel:
			return "WARNING"
		case zl.ErrorLevel:
			return "ERROR"
		case zl.FatalLevel:
			return "CRITICAL"
		case zl.PanicLevel:
			return "CRITICAL"
		default:
			return "DEFAULT"
		}
	}
}

// newGCPLogger creates a logger that outputs JSON format (better for cloud environments)
func newGCPLogger(opts options) zl.Logger {
	// for Google Cloud Logging structured logging, we need to use specific field names
	zl.TimeFieldFormat = zl.TimeFormatUnix
	zl.TimestampFieldName = "timestamp"
	zl.LevelFieldName = "severity"
	zl.MessageFieldName = "message"

	return zl.New(opts.out).With().
		Timestamp().
		Logger()
}

// newConsoleLogger creates a human readable logger for local development
func newConsoleLogger(opts options) zl.Logger {
	writer := zl.ConsoleWriter{
		Out:        opts.out,
		TimeFormat: time.RFC3339,
	}

	return zl.New(writer).With().
		Timestamp().
		Logger()
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	log = newLogger(zl.New(w).With().Timestamp().Logger())
}
