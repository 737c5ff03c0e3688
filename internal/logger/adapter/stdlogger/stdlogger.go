// Package stdlogger adapts the global zerolog logger to printf style logger interfaces,
// most notably gorm's logger.Writer.
package stdlogger

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Logger forwards formatted messages to zerolog.
type Logger struct {
	component string
}

// New returns a Logger writing through log.Logger.
func New() *Logger {
	return &Logger{}
}

// NewComponent returns a Logger that tags every line with component.
func NewComponent(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	e := log.WithLevel(level)
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	return e
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.event(zerolog.DebugLevel).Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.event(zerolog.InfoLevel).Msgf(format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.event(zerolog.WarnLevel).Msgf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.event(zerolog.ErrorLevel).Msgf(format, args...)
}

// Printf implements gorm's logger.Writer. gorm prefixes its own level in the format,
// which is mapped back to a zerolog level here.
func (l *Logger) Printf(format string, args ...interface{}) {
	level := zerolog.DebugLevel

	switch {
	case strings.Contains(format, "[error]"):
		level = zerolog.ErrorLevel
	case strings.Contains(format, "[warn]"), strings.Contains(format, "SLOW SQL"):
		level = zerolog.WarnLevel
	case strings.Contains(format, "[info]"):
		level = zerolog.InfoLevel
	}

	l.event(level).Msgf(strings.TrimSpace(strings.ReplaceAll(format, "\n", " ")), args...)
}

// Gorm returns a gorm logger writing through zerolog.
// With logQueries every statement is traced, otherwise only slow statements and errors show up.
func Gorm(logQueries bool) gormlogger.Interface {
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}

	return gormlogger.New(NewComponent("gorm"), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
