package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-chailights/internal/config"
)

// ErrUnknownHoliday is wrapped by the *InvalidTargetError returned for a
// holiday name missing from the table.
var ErrUnknownHoliday = errors.New(config.ErrUnknownHoliday)

// InvalidTargetError rejects a request whose target cannot be matched:
// a month or day outside the calendar ranges, or an unknown holiday.
type InvalidTargetError struct {
	Target string
	Err    error
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%s %q: %v", config.ErrInvalidTarget, e.Target, e.Err)
}

func (e *InvalidTargetError) Unwrap() error { return e.Err }

// RecordConversionError describes a photo dropped by the normalizer.
type RecordConversionError struct {
	PhotoID string
	Value   string
	Err     error
}

func (e *RecordConversionError) Error() string {
	return fmt.Sprintf("photo %q (%q): %v", e.PhotoID, e.Value, e.Err)
}

func (e *RecordConversionError) Unwrap() error { return e.Err }

// Extension steps reported by HolidayExtensionError.
const (
	StepDiaspora = "diaspora"
	StepErev     = "erev"
)

// HolidayExtensionError describes an augmentation the expander had to omit
// or approximate because the converter failed.
type HolidayExtensionError struct {
	Holiday string
	Step    string
	Err     error
}

func (e *HolidayExtensionError) Error() string {
	return fmt.Sprintf("%s (%s, %s): %v", config.ErrHolidayExtension, e.Holiday, e.Step, e.Err)
}

func (e *HolidayExtensionError) Unwrap() error { return e.Err }
