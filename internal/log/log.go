// Package log wraps Uber's Zap logging library and bridges it to log/slog,
// so the rest of the project can log through slog's context-aware functions.
//
// Initialize() MUST be called before the first logging statement; logging
// before initialization falls back to slog's default text handler.
//
// See the Zap docs for more details: https://pkg.go.dev/go.uber.org/zap
package log

import (
	golog "log"
	"log/slog"
	"strings"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// LoggingEnv is used to represent a specific configuration used by a given
// environment.
type LoggingEnv string

// String implements the Stringer interface.
func (e LoggingEnv) String() string {
	return string(e)
}

const (
	LoggingEnvDev  LoggingEnv = "dev"
	LoggingEnvProd LoggingEnv = "prod"
)

var loggingEnv LoggingEnv = LoggingEnvDev

// Initialize sets up the process-wide logger for the given environment.
//
// "prod" uses zapdriver's production configuration with sampling disabled,
// so entries map cleanly onto structured log collectors; anything else uses
// Zap's development configuration.
func Initialize(env string) {
	var err error
	var logger *zap.Logger
	switch strings.ToLower(env) {
	case LoggingEnvProd.String():
		loggingEnv = LoggingEnvProd
		config := zapdriver.NewProductionConfig()
		// Make sure sampling is disabled.
		config.Sampling = nil
		// Build the logger and ensure we use the zapdriver Core so that
		// labels are handled correctly.
		logger, err = config.Build(zapdriver.WrapCore())
	case LoggingEnvDev.String():
		fallthrough
	default:
		loggingEnv = LoggingEnvDev
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		golog.Panic(err)
	}
	zap.RedirectStdLog(logger)
	// Route slog.Default to the same destination as zap.
	slogger := slog.New(NewContextLogHandler(zapslog.NewHandler(logger.Core(), &zapslog.HandlerOptions{
		AddSource: true,
	})))
	slog.SetDefault(slogger)
}

// LabelAttr causes attributes written by zapdriver to be marked as labels
// inside StackDriver when LoggingEnv is LoggingEnvProd. Otherwise it wraps
// slog.String.
func LabelAttr(key, value string) slog.Attr {
	if loggingEnv == LoggingEnvProd {
		return slog.String("labels."+key, value)
	}
	return slog.String(key, value)
}
