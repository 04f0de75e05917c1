package pak

import (
	"errors"
	"fmt"
)

var (
	ErrMagicMismatch   = errors.New("magic mismatch")
	ErrVersionMismatch = errors.New("unsupported version")
	ErrEndOfStream     = errors.New("unexpected end of stream")
	ErrInvalidText     = errors.New("invalid text")
	ErrUnsafePath      = errors.New("path escapes output root")
)

// Phase identifies the stage of decoding an error came from.
type Phase int

const (
	PhaseLoad Phase = iota
	PhaseHeader
	PhaseTable
	PhasePayload
)

func (p Phase) String() string {
	switch p {
	case PhaseLoad:
		return "loading"
	case PhaseHeader:
		return "header"
	case PhaseTable:
		return "table"
	case PhasePayload:
		return "payload"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Error is returned by every operation of this package. Record is the
// record path involved, if any.
type Error struct {
	Phase  Phase
	Record string
	Err    error
}

func (e *Error) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("pak: %s: %q: %v", e.Phase, e.Record, e.Err)
	}
	return fmt.Sprintf("pak: %s: %v", e.Phase, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func phaseError(p Phase, record string, err error) error {
	return &Error{Phase: p, Record: record, Err: err}
}
