package infer

import (
	"log/slog"

	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/types"
	"github.com/cottand/effy/internal/log"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "inference")

// TypeState is shared by every Env of one inference run.
//
// Errors holds the problems found in the program being checked, in the order
// they were reported. Failures holds defects of the checker itself: they are
// never the program's fault.
type TypeState struct {
	Fresher  *types.Fresher
	Errors   *ilerr.Errors
	Failures []error
	// Repl elaborates the REPL-only expression forms
	Repl ReplHandler

	nextIdent uint64
	logger    *slog.Logger
}

func NewTypeState() *TypeState {
	return &TypeState{
		Fresher: types.NewFresher(),
		Errors:  &ilerr.Errors{},
		Repl:    SequenceRepl{},
		logger:  logger,
	}
}

// report records a recoverable error; inference carries on.
func (s *TypeState) report(err ilerr.IleError) {
	s.logger.Warn("type error", "err", ilerr.FormatWithCode(err), "severity", err.Severity())
	s.Errors = s.Errors.With(err)
}

// fatal returns err so that it can be propagated up to the enclosing declaration.
func (s *TypeState) fatal(err ilerr.IleError) error {
	s.logger.Warn("aborting declaration", "err", ilerr.FormatWithCode(err))
	return err
}

// fail records a defect of the checker and returns it wrapped with a stack trace.
func (s *TypeState) fail(format string, args ...any) error {
	err := errors.Errorf(format, args...)
	s.logger.Error("internal failure", "err", err)
	s.Failures = append(s.Failures, err)
	return err
}
