package estimate

import "fmt"

// CalibrationError represents a calibration table that cannot be read, parsed or trusted
type CalibrationError struct {
	Message string
	Cause   error
}

func (e *CalibrationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("calibration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("calibration error: %s", e.Message)
}

func (e *CalibrationError) Unwrap() error {
	return e.Cause
}
