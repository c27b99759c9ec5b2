package entities

import (
	"errors"
	"fmt"
)

// FailureKind classifies a driver failure so descriptors can decide which
// kinds to swallow during their wait loop.
type FailureKind string

const (
	FailNoSuchElement   FailureKind = "no-such-element"
	FailStaleElement    FailureKind = "stale-element"
	FailNoSuchFrame     FailureKind = "no-such-frame"
	FailInvalidSelector FailureKind = "invalid-selector"
	FailTimeout         FailureKind = "timeout"
	FailUnknown         FailureKind = "unknown"
)

// FailureKinds - the full set of known failure kinds.
var FailureKinds = []FailureKind{
	FailNoSuchElement,
	FailStaleElement,
	FailNoSuchFrame,
	FailInvalidSelector,
	FailTimeout,
	FailUnknown,
}

// ParseFailureKind - validates a failure kind name from a page document.
func ParseFailureKind(name string) (FailureKind, error) {
	for _, k := range FailureKinds {
		if FailureKind(name) == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid failure kind %q, must be one of %v", name, FailureKinds)
}

// Failure - a classified driver error.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure - wraps a driver error with its failure kind.
func NewFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// KindOf - extracts the failure kind of an error, FailUnknown for errors
// that did not come from a session adapter.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return FailUnknown
}
