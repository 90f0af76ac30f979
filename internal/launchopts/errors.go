package launchopts

import (
	"errors"
	"fmt"
)

// ErrSeparatorExpected indicates own flags were not terminated by "--".
var ErrSeparatorExpected = errors.New("expected '--' after heapcap options")

// SeparatorError reports where the missing separator was expected.
type SeparatorError struct {
	Position int
	Token    string
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("cannot parse command-line, expected a '--' at position %d, got %q", e.Position, e.Token)
}

// Unwrap returns ErrSeparatorExpected.
func (e *SeparatorError) Unwrap() error {
	return ErrSeparatorExpected
}
