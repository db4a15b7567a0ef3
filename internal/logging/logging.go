package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const scopeFieldName = "scope"

type scopeKey struct{}

var logger = zerolog.Nop()

// Options selects the sink and verbosity of the process logger.
type Options struct {
	Out    io.Writer // defaults to os.Stderr
	Debug  bool
	Silent bool
	NoTime bool
}

// InitLogger replaces the process logger. Until it is called, logging is a no-op.
func InitLogger(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	partsOrder := []string{
		zerolog.TimestampFieldName,
		zerolog.LevelFieldName,
		scopeFieldName,
		zerolog.MessageFieldName,
	}
	if opts.NoTime {
		partsOrder = partsOrder[1:]
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		PartsOrder: partsOrder,
		FormatPrepare: func(m map[string]any) error {
			formatScopeValue(m)
			return nil
		},
		FieldsExclude: []string{scopeFieldName},
	}

	l := zerolog.New(consoleWriter).Hook(scopeHook{})
	switch {
	case opts.Silent:
		l = l.Level(zerolog.Disabled)
	case opts.Debug:
		l = l.Level(zerolog.DebugLevel)
	default:
		l = l.Level(zerolog.InfoLevel)
	}
	if !opts.NoTime {
		l = l.With().Timestamp().Logger()
	}
	logger = l
}

// WithScope tags ctx so log lines written through GetCtxLogger carry scope.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func scopeFromCtx(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(scopeKey{}).(string)
	return s, ok
}

func GetCtxLogger(ctx context.Context) zerolog.Logger {
	return logger.With().Ctx(ctx).Logger()
}

func formatScopeValue(vs map[string]any) {
	if scope, ok := vs[scopeFieldName].(string); ok {
		vs[scopeFieldName] = fmt.Sprintf("[%s]", scope)
	} else {
		vs[scopeFieldName] = ""
	}
}

type scopeHook struct{}

func (h scopeHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if scope, ok := scopeFromCtx(e.GetCtx()); ok {
		e.Str(scopeFieldName, scope)
	}
}
