package errs

import (
	"errors"
	"fmt"
)

// Class represents how the pipeline should react to an error.
type Class int

const (
	// ClassSkip marks a recoverable input problem (bad line, bad coordinate).
	// The offending item is dropped and processing continues.
	ClassSkip Class = iota
	// ClassInvalid marks invalid configuration or input that prevents a run.
	ClassInvalid
	// ClassFatal marks a genome-fatal condition that aborts the whole run.
	ClassFatal
)

// String returns the string representation of Class
func (c Class) String() string {
	switch c {
	case ClassSkip:
		return "skip"
	case ClassInvalid:
		return "invalid"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Gene model errors
	ErrNoGeneModel   = errors.New("no CDS or exon features with a Parent attribute")
	ErrMissingContig = errors.New("feature references a contig absent from the assembly")
	ErrNoAssembly    = errors.New("no genome assembly available for extraction")
	ErrNoAnnotation  = errors.New("no annotation file")

	// Input errors
	ErrParsingFailed = errors.New("parsing failed")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     Class
	Err       error
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Wrap creates a standardized error with context following the pattern:
// "component.operation: action failed: %w"
func Wrap(err error, component, operation, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, operation, action, err)
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, operation, action string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{
		Class:     ClassFatal,
		Err:       Wrap(err, component, operation, action),
		Component: component,
		Operation: operation,
	}
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, operation, action string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{
		Class:     ClassInvalid,
		Err:       Wrap(err, component, operation, action),
		Component: component,
		Operation: operation,
	}
}

// Classify returns the class of err. Unclassified errors that wrap one of the
// gene model sentinels are fatal; everything else unclassified is fatal too,
// because an unexpected I/O failure leaves a genome without outputs.
func Classify(err error) Class {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}
	if errors.Is(err, ErrInvalidConfig) {
		return ClassInvalid
	}
	if errors.Is(err, ErrParsingFailed) {
		return ClassSkip
	}
	return ClassFatal
}

// IsFatal checks if an error is genome-fatal
func IsFatal(err error) bool {
	return err != nil && Classify(err) == ClassFatal
}

// IsInvalid checks if an error is due to invalid configuration or input
func IsInvalid(err error) bool {
	return err != nil && Classify(err) == ClassInvalid
}
