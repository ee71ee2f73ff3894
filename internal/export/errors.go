package export

import "fmt"

// Error represents a failed export or measurement
type Error struct {
	Format  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export error: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
