package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCyclicDependency is matched by every *CycleError.
var ErrCyclicDependency = errors.New("cyclic internal dependency")

// CycleError reports an internal-dependency chain that returns to itself.
// Path starts and ends with the same component.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// UnknownDependencyError reports an internal dependency missing from the
// catalog.
type UnknownDependencyError struct {
	Component  string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("component %q depends on unknown component %q", e.Component, e.Dependency)
}

// Validate checks that every internal dependency names a catalog entry and
// that the dependency graph has no cycles.
func (r *Registry) Validate() error {
	var errs []error
	for _, c := range r.components {
		for _, dep := range c.InternalDependencies {
			if _, ok := r.byName[dep]; !ok {
				errs = append(errs, &UnknownDependencyError{Component: c.Name, Dependency: dep})
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(r.components))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case active:
			start := 0
			for i, n := range stack {
				if n == name {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), name)
			return &CycleError{Path: path}
		}
		state[name] = active
		stack = append(stack, name)
		c, _ := r.Get(name)
		for _, dep := range c.InternalDependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, c := range r.components {
		if err := visit(c.Name); err != nil {
			return err
		}
	}
	return nil
}
