package ilerr

import (
	"fmt"
	"log/slog"
)

// Errors is an append-only list of diagnostics, kept in the order they were reported.
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Codes lists the code of every error, in order.
func (r *Errors) Codes() []ErrCode {
	codes := make([]ErrCode, 0, len(r.Errors()))
	for _, e := range r.Errors() {
		codes = append(codes, e.Code())
	}
	return codes
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.String("msg", FormatWithCode(v)),
				slog.String("severity", v.Severity().String()),
			),
		})
	}
	return slog.GroupValue(vals...)
}
