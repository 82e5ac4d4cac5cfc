package installer

import (
	"errors"
	"fmt"

	"devx/internal/detect"
	"devx/internal/manifest"
	"devx/internal/placement"
	"devx/internal/registry"
)

// Failure kinds reported by Install. Kinds raised by collaborators are the
// collaborators' own sentinels so errors.Is works across packages.
var (
	ErrComponentNotFound        = errors.New("component not found in the component list")
	ErrFrameworkNotDetected     = detect.ErrFrameworkNotDetected
	ErrResourceDirectoryMissing = placement.ErrResourceDirectoryMissing
	ErrSourceFileMissing        = placement.ErrSourceFileMissing
	ErrCopyFailed               = placement.ErrCopyFailed
	ErrUserAborted              = errors.New("overwrite declined")
	ErrCyclicDependency         = registry.ErrCyclicDependency
	ErrManifestReadCorrupt      = manifest.ErrRepaired
	ErrExternalInstallFailed    = errors.New("external dependency install failed")
)

var kinds = []error{
	ErrComponentNotFound,
	ErrFrameworkNotDetected,
	ErrResourceDirectoryMissing,
	ErrSourceFileMissing,
	ErrCopyFailed,
	ErrUserAborted,
	ErrCyclicDependency,
	ErrManifestReadCorrupt,
	ErrExternalInstallFailed,
}

// Error is a failure of one install request. Kind is one of the Err* values
// above; Err carries the underlying cause when there is one.
type Error struct {
	Kind      error
	Component string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Component != "" {
		msg = fmt.Sprintf("%s: %s", e.Component, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil && e.Err != e.Kind {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err, or nil when err is not an
// install failure.
func KindOf(err error) error {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// fromPlacement converts a placement failure into an install failure for the
// named component.
func fromPlacement(component string, err error) *Error {
	out := &Error{Kind: ErrCopyFailed, Component: component, Err: err}
	var pe *placement.Error
	if errors.As(err, &pe) {
		out.Path = pe.Path
		out.Kind = pe.Kind
		out.Err = pe.Err
	}
	return out
}
