package sim

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger the engine's hooks write through. It
// defaults to logrus's standard logger; callers can swap in a configured
// instance (e.g. with a JSON formatter or a non-default output) via
// SetLogger.
var Logger = logrus.StandardLogger()

// SetLogger replaces the package-level logger used by TickLogger and
// MessageLogger.
func SetLogger(l *logrus.Logger) {
	Logger = l
}

// TickLogger is a Hook that logs every component tick at debug level.
type TickLogger struct{}

// NewTickLogger creates a TickLogger.
func NewTickLogger() *TickLogger {
	return &TickLogger{}
}

// Func implements Hook.
func (h *TickLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeTick {
		return
	}

	comp, _ := ctx.Item.(Component)
	fields := logrus.Fields{"time": int64(ctx.Now)}
	if comp != nil {
		fields["component"] = comp.Name()
	}

	Logger.WithFields(fields).Debug("tick")
}

// MessageLogger is a Hook that logs every message enqueued onto or drained
// from a port or timer, at debug level, including its Go type for
// diagnostics.
type MessageLogger struct{}

// NewMessageLogger creates a MessageLogger.
func NewMessageLogger() *MessageLogger {
	return &MessageLogger{}
}

// Func implements Hook.
func (h *MessageLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosEventEnqueued && ctx.Pos != HookPosEventDrained {
		return
	}

	Logger.WithFields(logrus.Fields{
		"time":    int64(ctx.Now),
		"pos":     ctx.Pos.Name,
		"msgType": reflect.TypeOf(ctx.Item).String(),
	}).Debug("message")
}
