package schedule

import (
	"fmt"
	"strings"
)

// Stage names the pipeline step a failure originated in.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageParse     Stage = "parse"
	StageWalk      Stage = "walk"
	StageNormalize Stage = "normalize"
)

// Error is returned by every step of the pipeline. It keeps the stage and,
// for normalization failures, the offending event and field.
type Error struct {
	Stage   Stage
	EventID string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	s := strings.Builder{}
	s.WriteString(string(e.Stage))
	if e.EventID != "" {
		fmt.Fprintf(&s, " event %q", e.EventID)
	}
	if e.Field != "" {
		fmt.Fprintf(&s, " field %s", e.Field)
	}
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageErr(st Stage, err error) *Error {
	return &Error{Stage: st, Err: err}
}

func fieldErr(id, field string, err error) *Error {
	return &Error{Stage: StageNormalize, EventID: id, Field: field, Err: err}
}
