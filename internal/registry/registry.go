package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/components.yaml
var componentsYAML []byte

//go:embed catalog/frameworks.yaml
var frameworksYAML []byte

// Component is a catalog entry.
type Component struct {
	Name                 string   `yaml:"name" json:"name"`
	Description          string   `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies         []string `yaml:"dependencies" json:"dependencies"`
	InternalDependencies []string `yaml:"internal" json:"internal_dependencies"`
}

// Framework describes a framework the tool knows about.
type Framework struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Registry is a read-only lookup over the component catalog.
type Registry struct {
	components []Component
	byName     map[string]int
	frameworks []Framework
}

// Default returns the registry compiled into the binary. It panics when the
// embedded catalog is invalid.
func Default() *Registry {
	reg, err := Parse(componentsYAML, frameworksYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded component catalog: %v", err))
	}
	if err := reg.Validate(); err != nil {
		panic(fmt.Sprintf("embedded component catalog: %v", err))
	}
	return reg
}

// Parse builds a registry from catalog documents. frameworks may be nil.
func Parse(components, frameworks []byte) (*Registry, error) {
	var compDoc struct {
		Components []Component `yaml:"components"`
	}
	if err := yaml.Unmarshal(components, &compDoc); err != nil {
		return nil, fmt.Errorf("decode components: %w", err)
	}

	reg := &Registry{byName: make(map[string]int, len(compDoc.Components))}
	for _, c := range compDoc.Components {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("component without a name")
		}
		if _, dup := reg.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate component %q", c.Name)
		}
		c.Dependencies = dedupe(c.Dependencies)
		if c.InternalDependencies == nil {
			c.InternalDependencies = []string{}
		}
		reg.byName[c.Name] = len(reg.components)
		reg.components = append(reg.components, c)
	}

	if len(frameworks) > 0 {
		var fwDoc struct {
			Frameworks []Framework `yaml:"frameworks"`
		}
		if err := yaml.Unmarshal(frameworks, &fwDoc); err != nil {
			return nil, fmt.Errorf("decode frameworks: %w", err)
		}
		reg.frameworks = fwDoc.Frameworks
	}

	return reg, nil
}

// Get returns the component with the exact given name.
func (r *Registry) Get(name string) (Component, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Component{}, false
	}
	return r.components[i], true
}

// List returns every component in catalog order.
func (r *Registry) List() []Component {
	return append([]Component(nil), r.components...)
}

// Frameworks returns the framework catalog.
func (r *Registry) Frameworks() []Framework {
	return append([]Framework(nil), r.frameworks...)
}

// Names returns component names in catalog order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.components))
	for i, c := range r.components {
		names[i] = c.Name
	}
	return names
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
