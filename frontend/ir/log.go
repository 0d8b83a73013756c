package ir

import (
	"context"
	"log/slog"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/types"
)

// slogExpr wraps an Expr as a slog.LogValuer so that the tree is only rendered
// when the record is actually written
func slogExpr(expr Expr) slog.LogValuer { return exprLogValuer{expr} }

func slogType(t types.Type) slog.LogValuer { return typeLogValuer{t} }

func slogScheme(s types.Scheme) slog.LogValuer { return schemeLogValuer{s} }

type exprLogValuer struct{ Expr }
type typeLogValuer struct{ types.Type }
type schemeLogValuer struct{ types.Scheme }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", ExprString(l.Expr)),
		slog.String("pos", ast.RangeOf(l.Expr).String()),
	)
}
func (l typeLogValuer) LogValue() slog.Value   { return slog.StringValue(types.TypeString(l.Type)) }
func (l schemeLogValuer) LogValue() slog.Value { return slog.StringValue(types.SchemeString(l.Scheme)) }

// SlogHandler wraps underlying so that core expressions, types and schemes
// passed as attributes are printed lazily.
func SlogHandler(underlying slog.Handler) slog.Handler {
	return &exprLogHandler{underlying: underlying}
}

type exprLogHandler struct {
	underlying slog.Handler
}

func (l *exprLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *exprLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func wrapAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	switch value := attr.Value.Any().(type) {
	case Expr:
		attr.Value = slog.AnyValue(slogExpr(value))
	case types.Type:
		attr.Value = slog.AnyValue(slogType(value))
	case types.Scheme:
		attr.Value = slog.AnyValue(slogScheme(value))
	}
	return attr
}

func (l *exprLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapAttr(attr)
	}
	return SlogHandler(l.underlying.WithAttrs(wrapped))
}

func (l *exprLogHandler) WithGroup(name string) slog.Handler {
	return SlogHandler(l.underlying.WithGroup(name))
}
