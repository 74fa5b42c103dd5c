// Package logging defines the operational log sink consumed by the engine
// and the liquidation handlers. All calls are fire and forget.
package logging

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Logger is the abstract sink for operational and diagnostic output.
type Logger interface {
	Log(msg string)
	Error(err error)
	// Table dumps a structured value for diagnostics.
	Table(v interface{})
	Flush()
}

// ZerologLogger writes through a zerolog.Logger.
type ZerologLogger struct {
	logger zerolog.Logger
}

func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

func (l *ZerologLogger) Log(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *ZerologLogger) Error(err error) {
	l.logger.Error().Err(err).Send()
}

func (l *ZerologLogger) Table(v interface{}) {
	encoded, err := json.Marshal(v)
	if err != nil {
		l.logger.Error().Err(err).Msg("table encode failed")
		return
	}
	l.logger.Info().RawJSON("table", encoded).Send()
}

func (l *ZerologLogger) Flush() {}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Log(string)         {}
func (NopLogger) Error(error)        {}
func (NopLogger) Table(interface{})  {}
func (NopLogger) Flush()             {}
