package detect

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Framework names a host project framework. Explicit overrides may carry
// any value; the constants are the ones the tool knows how to detect or list.
type Framework string

const (
	Next    Framework = "next"
	React   Framework = "react"
	Nest    Framework = "nest"
	Express Framework = "express"
)

// ErrFrameworkNotDetected is returned when no known marker file exists.
var ErrFrameworkNotDetected = errors.New("no valid framework detected (Next.js or React + Vite)")

// Context is the framework classification for one invocation.
type Context struct {
	Framework      Framework `json:"framework"`
	UsesTypeScript bool      `json:"uses_typescript"`
}

// DefaultFileType returns the template extension matching the language variant.
func (c Context) DefaultFileType() string {
	if c.UsesTypeScript {
		return "tsx"
	}
	return "jsx"
}

type marker struct {
	file    string
	context Context
}

// markers are probed in order; the first existing file wins.
var markers = []marker{
	{"next.config.ts", Context{Framework: Next, UsesTypeScript: true}},
	{"next.config.mjs", Context{Framework: Next, UsesTypeScript: false}},
	{"vite.config.ts", Context{Framework: React, UsesTypeScript: true}},
	{"vite.config.js", Context{Framework: React, UsesTypeScript: false}},
}

// Markers returns the probed marker file names in priority order.
func Markers() []string {
	out := make([]string, len(markers))
	for i, m := range markers {
		out[i] = m.file
	}
	return out
}

// Detect classifies the project at root by its configuration files.
func Detect(root string) (Context, error) {
	for _, m := range markers {
		info, err := os.Stat(filepath.Join(root, m.file))
		if err == nil && !info.IsDir() {
			return m.context, nil
		}
	}
	return Context{}, ErrFrameworkNotDetected
}

// FromOverride builds a context from a user-supplied framework name without
// inspecting the project. Only Next is assumed to use TypeScript.
func FromOverride(name string) Context {
	fw := Framework(strings.TrimSpace(name))
	return Context{Framework: fw, UsesTypeScript: fw == Next}
}

// Resolve returns the override context when override is set and detects
// otherwise.
func Resolve(root, override string) (Context, error) {
	if strings.TrimSpace(override) != "" {
		return FromOverride(override), nil
	}
	return Detect(root)
}
