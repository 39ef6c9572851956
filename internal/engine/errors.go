package engine

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResult = errors.New("malformed engine result")
	ErrUnexpectedAck   = errors.New("unexpected engine acknowledgement")
	ErrOperationFailed = errors.New("engine operation did not succeed")
)

// EngineError is returned when the engine reports a failure or when its
// result cannot be understood.
type EngineError struct {
	Command string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("engine %s: %s: %v", e.Command, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("engine %s: %v", e.Command, e.Err)
	default:
		return fmt.Sprintf("engine %s: %s", e.Command, e.Message)
	}
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsEngineError reports whether err carries an [*EngineError].
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}
