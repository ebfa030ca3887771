package executor

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// IOError reports a child process that could not be started, waited for or
// read from. It is never folded into a Response.
type IOError struct {
	Command string
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("exec %q: %v", e.Command, e.Err)
}

func (e *IOError) Cause() error { return e.Err }

// IsTimeout reports whether err is the executor deadline expiring.
func IsTimeout(err error) bool {
	return errors.Cause(err) == context.DeadlineExceeded
}
