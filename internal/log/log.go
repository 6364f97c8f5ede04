// Package log defines the logger used across the application.
//
// Implementations live in subpackages so the core packages only depend on
// this interface. Use [Noop] when nothing should be logged.
package log

import "context"

// Kv is a helper type for structured logging key-value pairs.
type Kv = map[string]any

// Logger is the interface every logger implementation must satisfy.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values Kv) Logger
	WithCtxValues(ctx context.Context) Logger
	SetValuesOnCtx(parent context.Context, values Kv) context.Context
}

// Noop logger discards everything.
var Noop Logger = noop{}

type noop struct{}

func (noop) Infof(format string, args ...any)                            {}
func (noop) Warningf(format string, args ...any)                         {}
func (noop) Errorf(format string, args ...any)                           {}
func (noop) Debugf(format string, args ...any)                           {}
func (n noop) WithValues(_ Kv) Logger                                    { return n }
func (n noop) WithCtxValues(_ context.Context) Logger                    { return n }
func (noop) SetValuesOnCtx(parent context.Context, _ Kv) context.Context { return parent }

type contextKey int

// contextLogValuesKey is used to store log values in a context.
const contextLogValuesKey contextKey = iota

// CtxWithValues returns a copy of parent with the values merged into the
// ones already stored, so later calls win on key collision.
func CtxWithValues(parent context.Context, kv Kv) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	merged := Kv{}
	for k, v := range ValuesFromCtx(parent) {
		merged[k] = v
	}
	for k, v := range kv {
		merged[k] = v
	}

	return context.WithValue(parent, contextLogValuesKey, merged)
}

// ValuesFromCtx gets the log values stored on the context, if any.
func ValuesFromCtx(ctx context.Context) Kv {
	if ctx == nil {
		return Kv{}
	}
	v, ok := ctx.Value(contextLogValuesKey).(Kv)
	if !ok {
		return Kv{}
	}
	return v
}
