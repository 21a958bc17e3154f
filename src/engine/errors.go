package engine

import "fmt"

// InvalidArgumentError is returned when a submission carries a value
// the book refuses to accept (zero quantity, non-positive limit
// price). Reference behavior per §9 of the design notes is to accept
// these silently; this book takes the stricter reading instead.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("engine: invalid argument: %s", e.Reason)
}
