package schedule

import "fmt"

// ParseError reports a frequency or moment token that is malformed or out of range.
type ParseError struct {
	Kind   string // "every" or "at"
	Value  string // raw expression as given by the caller
	Reason string // what is wrong, including the valid range when applicable
}

// Error реализует интерфейс error
func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s value %q is invalid", e.Kind, e.Value)
	}
	return fmt.Sprintf("%s value %q is invalid: %s", e.Kind, e.Value, e.Reason)
}

// ValidationError reports an "at" moment that cannot be combined with the
// recurrence type of the "every" expression.
type ValidationError struct {
	Every     string
	At        string
	EveryType string
	AtType    string
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s can not be set when every is %s related (every=%q, at=%q)",
		e.AtType, e.EveryType, e.Every, e.At)
}

func everyError(every, reason string) *ParseError {
	return &ParseError{Kind: "every", Value: every, Reason: reason}
}

func atError(at, reason string) *ParseError {
	return &ParseError{Kind: "at", Value: at, Reason: reason}
}
